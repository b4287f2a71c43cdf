package preferences

import (
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Store, error) {
		kv := do.MustInvoke[KV](i)
		return NewStore(kv), nil
	})
}
