/*
 * handy.go, part of goaims.
 *
 * Copyright 2024 Raul Mera <rmera{at}usach(dot)cl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package aims

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//FormatFloat formats a float the shortest way that still represents it exactly.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//FormatValue returns the string FHI-aims expects for the value of a directive.
//Bools become .true./.false., slices and arrays are joined by spaces and maps
//are written as "key value" pairs sorted by key. Values can be Go types or
//whatever encoding/json produces when decoding a parameters file.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return ".true."
		}
		return ".false."
	case float64:
		return FormatFloat(v)
	case float32:
		return FormatFloat(float64(v))
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		s := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s = append(s, FormatValue(rv.Index(i).Interface()))
		}
		return strings.Join(s, " ")
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		vals := make(map[string]string, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			vals[k] = FormatValue(iter.Value().Interface())
		}
		sort.Strings(keys)
		s := make([]string, 0, 2*len(keys))
		for _, k := range keys {
			s = append(s, k, vals[k])
		}
		return strings.Join(s, " ")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return fmt.Sprint(value)
}

//ToMap returns value as a map[string]interface{} if it is a map with string keys of any
//named or unnamed type, e.g. the Parameters of the sets package.
func ToMap(value interface{}) (map[string]interface{}, bool) {
	if m, ok := value.(map[string]interface{}); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	ret := make(map[string]interface{}, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		ret[iter.Key().String()] = iter.Value().Interface()
	}
	return ret, true
}

//ToFloat converts the numeric types a parameter can hold (including the ones
//produced by encoding/json and TOML decoders) to float64.
func ToFloat(value interface{}) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

//ToFloats converts a slice or array of numbers into a []float64. Returns false if value
//is not a slice or any of its elements is not a number.
func ToFloats(value interface{}) ([]float64, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	ret := make([]float64, rv.Len())
	for i := range ret {
		f, ok := ToFloat(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		ret[i] = f
	}
	return ret, true
}
