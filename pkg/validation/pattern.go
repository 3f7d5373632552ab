package validation

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// patternTimeout bounds a single match so a pathological pattern cannot hang
// a submission.
const patternTimeout = 250 * time.Millisecond

var patternCache sync.Map // string -> *regexp2.Regexp

// MatchPattern tests value against pattern the way the browser's
// RegExp.test does: ECMAScript syntax, unanchored search.
func MatchPattern(pattern, value string) (bool, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}
	ok, err := re.MatchString(value)
	if err != nil {
		return false, fmt.Errorf("validation: match pattern %q: %w", pattern, err)
	}
	return ok, nil
}

func compilePattern(pattern string) (*regexp2.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = patternTimeout
	actual, _ := patternCache.LoadOrStore(pattern, re)
	return actual.(*regexp2.Regexp), nil
}
