// Package providers registers all concrete AI providers with the core
// factory. Import it for side effects:
//
//	_ "github.com/veritylabs/verityai/src/ai/providers"
package providers

import (
	"github.com/veritylabs/verityai/src/ai/core"
	"github.com/veritylabs/verityai/src/ai/openrouter"
	"github.com/veritylabs/verityai/src/ai/sambanova"
)

func init() {
	core.RegisterProvider("sambanova", sambanova.NewClient, "samba")
	core.RegisterProvider("openrouter", openrouter.NewClient, "or")
}
