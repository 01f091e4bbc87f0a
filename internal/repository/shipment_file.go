package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradeboard/internal/model"

	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// shipmentRow is the on-disk shape shared by the JSON and Parquet readers
type shipmentRow struct {
	ID                 json.RawMessage `json:"id"`
	ImporterName       string          `json:"importer_name"`
	ImporterCountry    string          `json:"importer_country"`
	ImporterWebsite    string          `json:"importer_website"`
	ExporterName       string          `json:"exporter_name"`
	ExporterCountry    string          `json:"exporter_country"`
	CommodityName      string          `json:"commodity_name"`
	WeightMetricTonnes float64         `json:"weight_metric_tonnes"`
	ShipmentDate       string          `json:"shipment_date"`
}

// parquetShipment mirrors shipmentRow with parquet column names
type parquetShipment struct {
	ID                 string  `parquet:"id"`
	ImporterName       string  `parquet:"importer_name"`
	ImporterCountry    string  `parquet:"importer_country"`
	ImporterWebsite    string  `parquet:"importer_website"`
	ExporterName       string  `parquet:"exporter_name"`
	ExporterCountry    string  `parquet:"exporter_country"`
	CommodityName      string  `parquet:"commodity_name"`
	WeightMetricTonnes float64 `parquet:"weight_metric_tonnes"`
	ShipmentDate       string  `parquet:"shipment_date"`
}

type fileSource struct {
	path string
}

// NewFileSource reads shipments from a JSON array, JSON lines, or a
// Parquet file (selected by the .parquet extension).
func NewFileSource(path string) ShipmentSource {
	return &fileSource{path: path}
}

func (s *fileSource) Describe() string {
	return "file:" + s.path
}

func (s *fileSource) Load(ctx context.Context) ([]model.ShipmentRecord, error) {
	if strings.EqualFold(filepath.Ext(s.path), ".parquet") {
		return s.loadParquet()
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open shipment file %s", s.path)
	}
	defer f.Close()

	shipments, err := DecodeShipmentsJSON(ctx, f)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to decode shipment file %s", s.path)
	}
	return shipments, nil
}

func (s *fileSource) loadParquet() ([]model.ShipmentRecord, error) {
	rows, err := parquet.ReadFile[parquetShipment](s.path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read parquet file %s", s.path)
	}

	shipments := make([]model.ShipmentRecord, 0, len(rows))
	for i, row := range rows {
		date, err := parseShipmentDate(row.ShipmentDate)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", i)
		}
		shipments = append(shipments, model.ShipmentRecord{
			ID:                 row.ID,
			ImporterName:       row.ImporterName,
			ImporterCountry:    row.ImporterCountry,
			ImporterWebsite:    row.ImporterWebsite,
			ExporterName:       row.ExporterName,
			ExporterCountry:    row.ExporterCountry,
			CommodityName:      row.CommodityName,
			WeightMetricTonnes: row.WeightMetricTonnes,
			ShipmentDate:       date,
		})
	}
	return shipments, nil
}

// DecodeShipmentsJSON accepts either a top-level array of shipment objects
// or newline-delimited objects.
func DecodeShipmentsJSON(ctx context.Context, r io.Reader) ([]model.ShipmentRecord, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return []model.ShipmentRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(br)
	isArray := first == '['
	if isArray {
		if _, err := dec.Token(); err != nil {
			return nil, eris.Wrap(err, "failed to read array start")
		}
	}

	shipments := make([]model.ShipmentRecord, 0, 1024)
	for i := 0; dec.More(); i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var row shipmentRow
		if err := dec.Decode(&row); err != nil {
			return nil, eris.Wrapf(err, "record %d", i)
		}
		rec, err := row.toRecord()
		if err != nil {
			return nil, eris.Wrapf(err, "record %d", i)
		}
		shipments = append(shipments, rec)
	}

	if isArray {
		if _, err := dec.Token(); err != nil {
			return nil, eris.Wrap(err, "failed to read array end")
		}
	}
	return shipments, nil
}

func (row shipmentRow) toRecord() (model.ShipmentRecord, error) {
	date, err := parseShipmentDate(row.ShipmentDate)
	if err != nil {
		return model.ShipmentRecord{}, err
	}
	return model.ShipmentRecord{
		ID:                 rawID(row.ID),
		ImporterName:       row.ImporterName,
		ImporterCountry:    row.ImporterCountry,
		ImporterWebsite:    row.ImporterWebsite,
		ExporterName:       row.ExporterName,
		ExporterCountry:    row.ExporterCountry,
		CommodityName:      row.CommodityName,
		WeightMetricTonnes: row.WeightMetricTonnes,
		ShipmentDate:       date,
	}, nil
}

// rawID keeps numeric and string ids alike as their textual form
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func parseShipmentDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, eris.Errorf("invalid shipment_date %q", value)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
