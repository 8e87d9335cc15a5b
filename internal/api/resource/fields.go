package resource

import (
	"reflect"
	"time"
)

// resetServerFields clears the columns a client must never choose on create.
func resetServerFields(rec any) {
	v := reflect.ValueOf(rec).Elem()
	for _, name := range []string{"ID", "Version"} {
		if f := v.FieldByName(name); f.IsValid() && f.CanSet() {
			f.Set(reflect.Zero(f.Type()))
		}
	}
	for _, name := range []string{"CreatedAt", "UpdatedAt"} {
		if f := v.FieldByName(name); f.IsValid() && f.CanSet() && f.Type() == reflect.TypeOf(time.Time{}) {
			f.Set(reflect.Zero(f.Type()))
		}
	}
}
