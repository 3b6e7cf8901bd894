package initchecker

import (
	"reflect"

	log "github.com/sirupsen/logrus"
)

// CheckInit принимает пары "имя", зависимость и останавливает запуск, если зависимость не создана.
// Интерфейс с nil указателем внутри тоже считается не созданным.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		log.Panic("CheckInit: нечетное количество аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			log.Panicf("CheckInit: аргумент %v должен быть именем зависимости", i)
		}
		if isNil(pairs[i+1]) {
			log.WithField("dependency", name).Panic("зависимость не инициализирована")
		}
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
