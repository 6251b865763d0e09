package dot

import "errors"

// rule is a grammar rule. On failure it returns an error; the parser position is restored by the combinator that
// called it.
type rule[T any] func() (T, error)

func isFatal(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr) && parseErr.fatal
}

// choice tries the alternatives in order and returns the result of the first one that matches. If none match,
// the error of the alternative that got furthest is returned.
func choice[T any](p *parser, alternatives ...rule[T]) (T, error) {
	start := p.pos
	var best error
	bestOffset := -1
	for _, alternative := range alternatives {
		result, err := alternative()
		if err == nil {
			return result, nil
		}
		if isFatal(err) {
			return result, err
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) && parseErr.Offset > bestOffset {
			best = err
			bestOffset = parseErr.Offset
		}
		p.pos = start
	}
	var empty T
	if best == nil {
		best = p.fail()
	}
	return empty, best
}

// optional runs the rule and reports whether it matched. A mismatch restores the position and is not an error.
func optional[T any](p *parser, r rule[T]) (T, bool, error) {
	start := p.pos
	result, err := r()
	if err == nil {
		return result, true, nil
	}
	if isFatal(err) {
		return result, false, err
	}
	p.pos = start
	var empty T
	return empty, false, nil
}

// many runs the rule until it no longer matches.
func many[T any](p *parser, r rule[T]) ([]T, error) {
	var result []T
	for {
		start := p.pos
		item, ok, err := optional(p, r)
		if err != nil {
			return nil, err
		}
		if !ok || p.pos.offset == start.offset {
			return result, nil
		}
		result = append(result, item)
	}
}

// many1 is like many, but requires at least one match.
func many1[T any](p *parser, r rule[T]) ([]T, error) {
	first, err := r()
	if err != nil {
		return nil, err
	}
	rest, err := many(p, r)
	if err != nil {
		return nil, err
	}
	return append([]T{first}, rest...), nil
}
