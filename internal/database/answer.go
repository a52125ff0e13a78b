package database

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

const (
	nullText = "(NULL)"
	blobText = "(BLOB)"
)

// Cell is one rendered value of a result row
type Cell struct {
	IsNull bool   `json:"is_null"`
	IsBlob bool   `json:"is_blob"`
	Value  string `json:"value"`
}

// Answer is the result of one statement
type Answer struct {
	SQL          string   `json:"sql"`
	Headers      []string `json:"headers"`
	Rows         [][]Cell `json:"rows"`
	RowsAffected int64    `json:"rows_affected"`
	Truncated    bool     `json:"truncated,omitempty"`
}

// HasResultSet reports whether the statement produced columns
func (a *Answer) HasResultSet() bool {
	return len(a.Headers) > 0
}

// NullCell returns the cell used for SQL NULL
func NullCell() Cell {
	return Cell{IsNull: true, Value: nullText}
}

// BlobCell returns the cell used for binary values
func BlobCell() Cell {
	return Cell{IsBlob: true, Value: blobText}
}

// CellFromValue converts a value scanned through database/sql into a Cell
func CellFromValue(v interface{}) Cell {
	switch val := v.(type) {
	case nil:
		return NullCell()
	case []byte:
		return BlobCell()
	case string:
		return Cell{Value: val}
	case int64:
		return Cell{Value: strconv.FormatInt(val, 10)}
	case float64:
		return Cell{Value: strconv.FormatFloat(val, 'f', -1, 64)}
	case bool:
		return Cell{Value: strconv.FormatBool(val)}
	case time.Time:
		return Cell{Value: val.Format(time.RFC3339)}
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			return Cell{Value: err.Error()}
		}
		return CellFromValue(inner)
	default:
		return Cell{Value: fmt.Sprint(val)}
	}
}
