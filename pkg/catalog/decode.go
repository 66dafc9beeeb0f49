package catalog

import (
	"bytes"
	"io"

	"github.com/arthur-debert/brewadopt/pkg/errors"
	"github.com/arthur-debert/brewadopt/pkg/types"
	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

var gzipMagic = []byte{0x1f, 0x8b}

// maybeGunzip inflates data when it carries the gzip magic number and
// returns it unchanged otherwise.
func maybeGunzip(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = zr.Close() }()
	return io.ReadAll(zr)
}

// decodeRecords decodes a JSON array of cask records one element at a time.
// Elements that fail to decode are logged and skipped. A document that is
// not an array is CATALOG_DECODE; an array with no usable record is
// CATALOG_EMPTY.
func decodeRecords(data []byte, logger zerolog.Logger) ([]types.PackageRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogDecode, "catalog is not a JSON array")
	}

	records := make([]types.PackageRecord, 0, len(raw))
	skipped := 0
	for i, item := range raw {
		var rec types.PackageRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			skipped++
			logger.Debug().Err(err).Int("position", i).Msg("Skipping undecodable catalog record")
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Int("decoded", len(records)).Msg("Some catalog records were skipped")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCatalogEmpty, "catalog contains no usable records").
			WithDetail("elements", len(raw))
	}
	return records, nil
}
