package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-in-a-TEXT-column helpers for sqlite.

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *StringList) Scan(src any) error {
	out := []string{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

type BrandingOptions []BrandingOption

func (o BrandingOptions) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]BrandingOption(o))
	return string(b), err
}

func (o *BrandingOptions) Scan(src any) error {
	out := []BrandingOption{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*o = out
	return nil
}

type Specs map[string]any

func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(s))
	return string(b), err
}

func (s *Specs) Scan(src any) error {
	out := map[string]any{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

type QuoteItems []QuoteItem

func (q QuoteItems) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]QuoteItem(q))
	return string(b), err
}

func (q *QuoteItems) Scan(src any) error {
	out := []QuoteItem{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*q = out
	return nil
}

func scanJSON(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
