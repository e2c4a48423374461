package answer

import "math"

// emotionKeys is the fixed emotion vocabulary, per the Python original's
// ScoreSanitizer.
var emotionKeys = []string{"joy", "sadness", "anger", "fear", "neutral"}

// rangeKeys are the [0,1]-clamped scalar scores besides emotion.
var rangeKeys = []string{"relevance_to_question", "relevance_to_category", "toxicity"}

// sanitizeScores clamps and rounds raw, model-supplied scores to the
// ranges §6's answer-analysis contract requires, dropping anything that
// does not coerce to the expected shape. It is grounded on
// app/utils/score_sanitizer.py's ScoreSanitizer.sanitize, which treats a
// malformed or missing field as "omit", never as a hard failure.
func sanitizeScores(raw map[string]any) map[string]any {
	out := make(map[string]any)
	if raw == nil {
		return out
	}

	if s, ok := asFloat(raw["sentiment"]); ok {
		out["sentiment"] = roundTo(clamp(s, -1, 1), 2)
	}

	if emoRaw, ok := raw["emotion"].(map[string]any); ok {
		emo := make(map[string]any)
		for _, k := range emotionKeys {
			if v, ok := asFloat(emoRaw[k]); ok {
				emo[k] = roundTo(clamp(v, 0, 1), 2)
			}
		}
		if len(emo) > 0 {
			out["emotion"] = emo
		}
	}

	for _, k := range rangeKeys {
		if v, ok := asFloat(raw[k]); ok {
			out[k] = roundTo(clamp(v, 0, 1), 2)
		}
	}

	if l, ok := asInt(raw["length"]); ok {
		if l < 0 {
			l = 0
		}
		out["length"] = l
	}

	if kw, ok := raw["keywords"]; ok {
		out["keywords"] = kw
	}

	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// asFloat coerces a decoded JSON value (float64, int, json.Number-free
// since we decode into any) into a float64, matching Python's permissive
// float(...) coercion but refusing non-numeric types instead of raising.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
