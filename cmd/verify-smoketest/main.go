// verify-smoketest exercises the configured AI providers end to end with a
// sample claim, so an operator can confirm credentials and connectivity
// before pointing traffic at the API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	aicore "github.com/veritylabs/verityai/src/ai/core"
	_ "github.com/veritylabs/verityai/src/ai/providers"
	"github.com/veritylabs/verityai/src/verifier"
)

var (
	providersFlag = flag.String("providers", "sambanova", "Comma-separated provider list or 'all'")
	contentFlag   = flag.String("content", defaultContent, "Content to fact-check")
	timeoutFlag   = flag.Duration("timeout", 45*time.Second, "Per-provider timeout")
	maxLenFlag    = flag.Int("max-bytes", 1200, "Maximum bytes of output to print per response (0=unlimited)")
)

const defaultContent = "NASA confirmed today that the Apollo 11 moon landing took place in July 1969."

var allProviders = []string{"sambanova", "openrouter"}

func main() {
	log.SetFlags(0)
	flag.Parse()

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}

	for _, provider := range providers {
		if err := runProvider(provider); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
		}
	}
}

func runProvider(provider string) error {
	client, err := aicore.NewClient(aicore.FactoryConfig{
		Provider:      provider,
		SambaNovaKey:  os.Getenv("SAMBANOVA_API_KEY"),
		OpenRouterKey: os.Getenv("OPENROUTER_API_KEY"),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	gw := verifier.NewGateway(client, nil)
	result := gw.InvokeText(ctx, *contentFlag)

	log.Printf("[%s] score=%d verdict=%s", provider, result.Score, result.Verdict)
	log.Printf("[%s] reasoning: %s", provider, truncate(result.Reasoning, *maxLenFlag))
	return nil
}

func resolveProviders(spec string) []string {
	if strings.EqualFold(strings.TrimSpace(spec), "all") {
		return allProviders
	}
	var out []string
	for _, p := range strings.Split(spec, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
