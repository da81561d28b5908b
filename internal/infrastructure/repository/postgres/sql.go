package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func marshalJSON(value any) ([]byte, error) {
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal json document: %w", err)
	}
	return encoded, nil
}

func unmarshalJSON(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal json document: %w", err)
	}
	return nil
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringFromNull(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}

func nullTimeToTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time
	return &t
}
