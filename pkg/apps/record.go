package apps

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
)

// Record is one application entry of the input array.
type Record struct {
	AppID     string `json:"appId" bson:"app_id"`
	Name      string `json:"name" bson:"name"`
	IsPrimary bool   `json:"isPrimary" bson:"is_primary"`
}

// Validate checks the fields of a single record.
func (r Record) Validate() error {
	return apperrors.ValidateAppID(r.AppID)
}

// ReadJSON decodes a JSON array of records from r and validates each record.
//
// The input must be a JSON array; an object, a scalar or trailing garbage is
// rejected. Unknown fields on records are ignored. The returned slice keeps
// input order, which the builder relies on for node ids and edge order.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "read records")
	}
	return Decode(data)
}

// Decode parses a JSON array of records held in memory.
func Decode(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "records must be a JSON array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode records")
	}
	if dec.More() {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unexpected data after records array")
	}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "record %d", i)
		}
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// ImportJSON reads the JSON record array stored at path.
func ImportJSON(path string) ([]Record, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Canonical returns a stable JSON encoding of records, used for cache keys.
func Canonical(records []Record) []byte {
	data, _ := json.Marshal(records)
	return data
}

// PrimaryCount returns how many records are marked primary.
func PrimaryCount(records []Record) int {
	n := 0
	for _, r := range records {
		if r.IsPrimary {
			n++
		}
	}
	return n
}
