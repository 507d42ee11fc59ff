// Package query translates request filter/sort/pagination values into the
// repositories' vocabulary. All user input is validated here; repositories
// only ever see enumerated order clauses and parsed time bounds.
package query

import (
	"fmt"
	"time"

	"toolledger.GO/core/apperr"
	"toolledger.GO/core/cache"
	toolEntity "toolledger.GO/model/entity/tool"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimit bounds a page size to [1, MaxLimit], defaulting when unset.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampOffset floors an offset at zero.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

var toolSorts = map[string]string{
	"":              "id DESC",
	"id_asc":        "id ASC",
	"id_desc":       "id DESC",
	"name_asc":      "name ASC",
	"name_desc":     "name DESC",
	"quantity_asc":  "quantity ASC",
	"quantity_desc": "quantity DESC",
}

// ParseToolSort maps a tool sort key to an order clause. Default id_desc.
func ParseToolSort(key string) (string, error) {
	order, ok := toolSorts[key]
	if !ok {
		return "", apperr.BadRequest(apperr.CodeInvalidSort, fmt.Sprintf("unknown sort %q", key))
	}
	return order, nil
}

var movementSorts = map[string]string{
	"":                "id DESC",
	"id_asc":          "id ASC",
	"id_desc":         "id DESC",
	"created_at_asc":  "created_at ASC, id ASC",
	"created_at_desc": "created_at DESC, id DESC",
}

// ParseMovementSort maps a movement sort key to an order clause. The
// created_at keys carry id as tiebreak so pagination stays stable.
func ParseMovementSort(key string) (string, error) {
	order, ok := movementSorts[key]
	if !ok {
		return "", apperr.BadRequest(apperr.CodeInvalidSort, fmt.Sprintf("unknown sort %q", key))
	}
	return order, nil
}

// ParseAction validates an optional action filter value.
func ParseAction(s string) (toolEntity.Action, error) {
	if s == "" {
		return "", nil
	}
	a := toolEntity.Action(s)
	if !a.IsValid() {
		return "", apperr.BadRequest(apperr.CodeInvalidAction, fmt.Sprintf("unknown action %q", s))
	}
	return a, nil
}

const dateLayout = "2006-01-02"

// loadLocation resolves a timezone name, memoizing parsed locations.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	c := cache.GetInstance()
	if v, ok := c.Get("tz:" + name); ok {
		return v.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperr.BadRequest(apperr.CodeInvalidTimezone, fmt.Sprintf("unknown timezone %q", name))
	}
	c.Set("tz:"+name, loc, 0)
	return loc, nil
}

// parseBound parses one time-range bound. A calendar date names a half-open
// day interval in loc; end selects which edge of that interval to use.
func parseBound(value string, loc *time.Location, end bool) (time.Time, error) {
	if d, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		if end {
			return d.AddDate(0, 0, 1), nil
		}
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
		return ts, nil
	}
	return time.Time{}, apperr.InvalidRange(fmt.Sprintf("cannot parse time %q", value))
}

// ParseTimeRange resolves from/to strings (dates or timestamps) into a
// half-open [from, to) interval. Empty strings leave a bound open.
func ParseTimeRange(from, to, tz string) (*time.Time, *time.Time, error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return nil, nil, err
	}

	var fromT, toT *time.Time
	if from != "" {
		t, err := parseBound(from, loc, false)
		if err != nil {
			return nil, nil, err
		}
		fromT = &t
	}
	if to != "" {
		t, err := parseBound(to, loc, true)
		if err != nil {
			return nil, nil, err
		}
		toT = &t
	}
	if fromT != nil && toT != nil && !fromT.Before(*toT) {
		return nil, nil, apperr.InvalidRange("start must precede end")
	}
	return fromT, toT, nil
}
