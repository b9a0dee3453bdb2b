package dsl

import "regexp"

// Block is a top-level `<keyword> <name> { ... }` declaration.
type Block struct {
	Name string
	Body string
}

func startRe(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\s+(\w+)\s*\{`)
}

var blockStartRe = map[string]*regexp.Regexp{
	"model":      startRe("model"),
	"enum":       startRe("enum"),
	"datasource": startRe("datasource"),
}

// Blocks returns every keyword block of src in source order. A block ends at
// the first unmatched closing brace outside a string literal, so attribute
// arguments such as @default("{}") stay inside the body. An unterminated
// block ends the scan.
func Blocks(src, keyword string) []Block {
	re, ok := blockStartRe[keyword]
	if !ok {
		re = startRe(keyword)
	}
	var out []Block
	for pos := 0; pos < len(src); {
		loc := re.FindStringSubmatchIndex(src[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[1]
		end := closingBrace(src, start)
		if end < 0 {
			break
		}
		out = append(out, Block{Name: src[pos+loc[2] : pos+loc[3]], Body: src[start:end]})
		pos = end + 1
	}
	return out
}

// closingBrace returns the index of the brace closing a block whose body
// starts at from, or -1. Line comments are skipped.
func closingBrace(src string, from int) int {
	depth := 0
	inString := false
	for i := from; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
