package config

import (
	"reflect"

	"github.com/spf13/viper"
)

// bindStructKeys registers section.field keys with viper so AutomaticEnv can
// resolve them even when the config file never mentions the section.
func bindStructKeys(v *viper.Viper, section string, s interface{}) {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		_ = v.BindEnv(section + "." + tag)
	}
}
