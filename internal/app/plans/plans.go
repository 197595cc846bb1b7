package plans

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"audioscribe/internal/app/model"
)

const megabyte = 1024 * 1024

// DefaultCreditsPerMinute is the transcription rate when no override is configured.
const DefaultCreditsPerMinute = 1

// RateLimit is the per-tier request ceiling. It is published with the plan
// table but not enforced by the API.
type RateLimit struct {
	Requests int   `yaml:"requests" json:"requests"`
	WindowMs int64 `yaml:"window_ms" json:"windowMs"`
}

// Plan describes one subscription tier
type Plan struct {
	ID            model.Tier `yaml:"id" json:"id"`
	Name          string     `yaml:"name" json:"name"`
	Price         int        `yaml:"price" json:"price"`
	Credits       int        `yaml:"credits" json:"credits"`
	MaxUploadSize int64      `yaml:"max_upload_size" json:"maxUploadSize"`
	Features      []string   `yaml:"features" json:"features"`
	StripePriceID string     `yaml:"stripe_price_id" json:"stripePriceId"`
	RateLimit     RateLimit  `yaml:"rate_limit" json:"rateLimit"`
}

// AutoLanguage is the language code that asks the engine to detect the language
const AutoLanguage = "auto"

// Language is a transcription language option; AutoLanguage means detect.
type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// fileConfig is the YAML layout accepted by Load
type fileConfig struct {
	CreditsPerMinute int        `yaml:"credits_per_minute"`
	Plans            []Plan     `yaml:"plans"`
	Languages        []Language `yaml:"languages"`
}

// Registry is the immutable tier table. Build it once at start with
// Default or Load and share it; it has no mutators.
type Registry struct {
	plans            map[model.Tier]Plan
	languages        []Language
	creditsPerMinute int
}

var tierOrder = map[model.Tier]int{
	model.TierFree:       0,
	model.TierPro:        1,
	model.TierEnterprise: 2,
}

func defaultPlans() []Plan {
	return []Plan{
		{
			ID:            model.TierFree,
			Name:          "Free",
			Price:         0,
			Credits:       100,
			MaxUploadSize: 25 * megabyte,
			Features: []string{
				"100 minutes of transcription",
				"Basic accuracy",
				"Standard support",
				"File upload up to 25MB",
			},
			RateLimit: RateLimit{Requests: 10, WindowMs: 60 * 1000},
		},
		{
			ID:            model.TierPro,
			Name:          "Pro",
			Price:         19,
			Credits:       1000,
			MaxUploadSize: 100 * megabyte,
			Features: []string{
				"1000 minutes of transcription",
				"High accuracy",
				"Priority support",
				"File upload up to 100MB",
				"Custom vocabulary",
				"Speaker identification",
			},
			StripePriceID: os.Getenv("STRIPE_PRO_PRICE_ID"),
			RateLimit:     RateLimit{Requests: 100, WindowMs: 60 * 1000},
		},
		{
			ID:            model.TierEnterprise,
			Name:          "Enterprise",
			Price:         99,
			Credits:       10000,
			MaxUploadSize: 500 * megabyte,
			Features: []string{
				"10000 minutes of transcription",
				"Highest accuracy",
				"24/7 support",
				"File upload up to 500MB",
				"Custom vocabulary",
				"Speaker identification",
				"API access",
				"Bulk processing",
				"Custom integrations",
			},
			StripePriceID: os.Getenv("STRIPE_ENTERPRISE_PRICE_ID"),
			RateLimit:     RateLimit{Requests: 1000, WindowMs: 60 * 1000},
		},
	}
}

func defaultLanguages() []Language {
	return []Language{
		{Code: AutoLanguage, Name: "Auto-detect"},
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "de", Name: "German"},
		{Code: "it", Name: "Italian"},
		{Code: "pt", Name: "Portuguese"},
		{Code: "ru", Name: "Russian"},
		{Code: "ja", Name: "Japanese"},
		{Code: "ko", Name: "Korean"},
		{Code: "zh", Name: "Chinese"},
		{Code: "ar", Name: "Arabic"},
		{Code: "hi", Name: "Hindi"},
	}
}

// Default returns the built-in plan table.
func Default() *Registry {
	r, _ := newRegistry(DefaultCreditsPerMinute, defaultPlans(), defaultLanguages())
	return r
}

// Load reads plan overrides from a YAML file. Tiers present in the file
// replace the built-in entry; absent tiers keep their defaults. An empty
// path returns Default().
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse plans file %s: %w", path, err)
	}

	merged := make(map[model.Tier]Plan)
	for _, p := range defaultPlans() {
		merged[p.ID] = p
	}
	for _, p := range cfg.Plans {
		merged[p.ID] = p
	}
	all := make([]Plan, 0, len(merged))
	for _, p := range merged {
		all = append(all, p)
	}

	rate := cfg.CreditsPerMinute
	if rate == 0 {
		rate = DefaultCreditsPerMinute
	}
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = defaultLanguages()
	}

	return newRegistry(rate, all, languages)
}

func newRegistry(rate int, all []Plan, languages []Language) (*Registry, error) {
	if rate < 1 {
		return nil, fmt.Errorf("credits_per_minute must be at least 1, got %d", rate)
	}

	r := &Registry{
		plans:            make(map[model.Tier]Plan, len(all)),
		languages:        append([]Language(nil), languages...),
		creditsPerMinute: rate,
	}
	for _, p := range all {
		if _, ok := tierOrder[p.ID]; !ok {
			return nil, fmt.Errorf("unknown tier %q", p.ID)
		}
		if p.MaxUploadSize <= 0 {
			return nil, fmt.Errorf("tier %s: max_upload_size must be positive", p.ID)
		}
		if p.Credits < 0 {
			return nil, fmt.Errorf("tier %s: credits must not be negative", p.ID)
		}
		p.Features = append([]string(nil), p.Features...)
		r.plans[p.ID] = p
	}
	return r, nil
}

// Plan returns the plan for tier.
func (r *Registry) Plan(tier model.Tier) (Plan, bool) {
	p, ok := r.plans[tier]
	return p, ok
}

// PlanOrFree returns the plan for tier, falling back to the free plan for
// tiers the table does not know.
func (r *Registry) PlanOrFree(tier model.Tier) Plan {
	if p, ok := r.plans[tier]; ok {
		return p
	}
	return r.plans[model.TierFree]
}

// MaxUploadSize is the upload ceiling in bytes for tier.
func (r *Registry) MaxUploadSize(tier model.Tier) int64 {
	return r.PlanOrFree(tier).MaxUploadSize
}

// Plans lists all plans from free to enterprise.
func (r *Registry) Plans() []Plan {
	out := make([]Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return tierOrder[out[i].ID] < tierOrder[out[j].ID]
	})
	return out
}

// CreditsPerMinute is the transcription rate
func (r *Registry) CreditsPerMinute() int {
	return r.creditsPerMinute
}

// Languages lists the language hints the engine accepts
func (r *Registry) Languages() []Language {
	return append([]Language(nil), r.languages...)
}
