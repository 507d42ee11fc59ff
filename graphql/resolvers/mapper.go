package resolvers

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	gqlmodels "toolledger.GO/graphql/models"
	toolEntity "toolledger.GO/model/entity/tool"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

func timeToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f == reflect.TypeOf(time.Time{}) && t.Kind() == reflect.String {
			return data.(time.Time).Format(time.RFC3339), nil
		}
		return data, nil
	}
}

var entityDecodeHook = mapstructure.ComposeDecodeHookFunc(
	timeToStringHook(),
	numberToStringHook(),
)

func decode(src, dst interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		DecodeHook: entityDecodeHook,
		Result:     dst,
		TagName:    "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

// MapTool converts a tool entity into its GraphQL model.
func MapTool(t *toolEntity.Tool) (*gqlmodels.Tool, error) {
	var out gqlmodels.Tool
	if err := decode(t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MapMovement converts a movement entity into its GraphQL model.
func MapMovement(m *toolEntity.Movement) (*gqlmodels.Movement, error) {
	var out gqlmodels.Movement
	if err := decode(m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
