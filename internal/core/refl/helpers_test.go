package refl

import "reflect"

// valueOf and typeOf trim the reflect.ValueOf/reflect.TypeOf boilerplate out
// of table-style codec tests in this package.
func valueOf(v any) reflect.Value { return reflect.ValueOf(v) }
func typeOf(v any) reflect.Type   { return reflect.TypeOf(v) }
