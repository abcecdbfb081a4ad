package campaigns

import "fmt"

var ctaOptions = map[Objective][]string{
	ObjectiveAwareness:    {"learn more", "discover", "explore", "see more"},
	ObjectiveTraffic:      {"visit", "click", "read more", "learn more", "check out"},
	ObjectiveEngagement:   {"comment", "share", "like", "tag", "tell us", "follow"},
	ObjectiveLeads:        {"sign up", "register", "subscribe", "get started", "download", "contact us"},
	ObjectiveAppPromotion: {"download", "install", "get the app", "try it"},
	ObjectiveSales:        {"shop now", "buy now", "order", "get yours", "save", "shop"},
}

// fallbackCTAs serve objectives outside the enumerated set.
var fallbackCTAs = []string{"learn more", "discover", "shop now", "sign up"}

var characterLimits = map[Platform]int{
	PlatformInstagram: 2200,
	PlatformFacebook:  63206,
	PlatformLinkedIn:  3000,
	PlatformTwitter:   280,
	PlatformTikTok:    2200,
}

const fallbackCharacterLimit = 2200

var aspectRatios = map[Platform]string{
	PlatformInstagram: "1:1",
	PlatformFacebook:  "1.91:1",
	PlatformLinkedIn:  "1.91:1",
	PlatformTwitter:   "16:9",
	PlatformTikTok:    "9:16",
}

const fallbackAspectRatio = "1:1"

func init() {
	if err := validateLookups(); err != nil {
		panic(err)
	}
}

// validateLookups ensures every enumerated value has an entry so the fallback
// branches only ever serve unknown input.
func validateLookups() error {
	for _, o := range objectives {
		if len(ctaOptions[o]) == 0 {
			return fmt.Errorf("campaigns: objective %q has no CTA options", o)
		}
	}
	for _, p := range platforms {
		if characterLimits[p] <= 0 {
			return fmt.Errorf("campaigns: platform %q has no character limit", p)
		}
		if aspectRatios[p] == "" {
			return fmt.Errorf("campaigns: platform %q has no aspect ratio", p)
		}
	}
	return nil
}

// CTAOptions returns call-to-action phrases suited to o.
func CTAOptions(o Objective) []string {
	if opts, ok := ctaOptions[o]; ok {
		return opts
	}
	return fallbackCTAs
}

// CharacterLimit returns the caption length limit for p.
func CharacterLimit(p Platform) int {
	if n, ok := characterLimits[p]; ok {
		return n
	}
	return fallbackCharacterLimit
}

// AspectRatio returns the preferred image aspect ratio for p.
func AspectRatio(p Platform) string {
	if r, ok := aspectRatios[p]; ok {
		return r
	}
	return fallbackAspectRatio
}
