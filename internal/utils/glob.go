package utils

import (
	"regexp"
	"strings"
	"sync"
)

// neverMatchingExpression stands in for an empty bracket set.
const neverMatchingExpression = `[^\x00-\x{10FFFF}]`

var (
	globExpressionCache   = map[string]*regexp.Regexp{}
	globExpressionCacheMu sync.Mutex
)

// MatchGlob reports whether name matches a shell-style glob as fnmatch does:
// '*' matches any run of characters including '/', '?' matches one character,
// and "[...]" is a character set negated by a leading '!' (a leading '^' is literal).
// An unterminated '[' is a literal character.
func MatchGlob(pattern string, name string) bool {
	expression := compileGlob(pattern)
	return expression != nil && expression.MatchString(name)
}

// compileGlob returns the cached expression for pattern, or nil when the
// translated expression does not compile (for example a reversed range).
func compileGlob(pattern string) *regexp.Regexp {
	globExpressionCacheMu.Lock()
	defer globExpressionCacheMu.Unlock()
	if expression, cached := globExpressionCache[pattern]; cached {
		return expression
	}
	expression, compileError := regexp.Compile(translateGlob(pattern))
	if compileError != nil {
		expression = nil
	}
	globExpressionCache[pattern] = expression
	return expression
}

func translateGlob(pattern string) string {
	patternRunes := []rune(pattern)
	patternLength := len(patternRunes)

	var builder strings.Builder
	builder.WriteString(`(?s)^`)
	for index := 0; index < patternLength; {
		current := patternRunes[index]
		index++
		switch current {
		case '*':
			for index < patternLength && patternRunes[index] == '*' {
				index++
			}
			builder.WriteString(`.*`)
		case '?':
			builder.WriteString(`.`)
		case '[':
			closing := index
			if closing < patternLength && patternRunes[closing] == '!' {
				closing++
			}
			if closing < patternLength && patternRunes[closing] == ']' {
				closing++
			}
			for closing < patternLength && patternRunes[closing] != ']' {
				closing++
			}
			if closing >= patternLength {
				builder.WriteString(`\[`)
				continue
			}
			builder.WriteString(bracketExpression(patternRunes[index:closing]))
			index = closing + 1
		default:
			builder.WriteString(regexp.QuoteMeta(string(current)))
		}
	}
	builder.WriteString(`$`)
	return builder.String()
}

func bracketExpression(members []rune) string {
	negated := false
	if len(members) > 0 && members[0] == '!' {
		negated = true
		members = members[1:]
	}
	if len(members) == 0 {
		if negated {
			return `.`
		}
		return neverMatchingExpression
	}

	var builder strings.Builder
	builder.WriteString("[")
	if negated {
		builder.WriteString("^")
	}
	for position, member := range members {
		isRange := member == '-' && position > 0 && position < len(members)-1
		if !isRange && strings.ContainsRune(`\]-^[`, member) {
			builder.WriteRune('\\')
		}
		builder.WriteRune(member)
	}
	builder.WriteString("]")
	return builder.String()
}
