package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/westcoasttreez/storefront-backend/pkg/enums"
	pkgerrors "github.com/westcoasttreez/storefront-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryMode reads an optional ?mode= parameter.
func ParseQueryMode(r *http.Request) (enums.Mode, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("mode"))
	if raw == "" {
		return "", nil
	}
	mode, err := enums.ParseMode(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid mode").WithDetails(map[string]any{"field": "mode"})
	}
	return mode, nil
}

// ParseQueryCategory reads an optional ?category= parameter.
func ParseQueryCategory(r *http.Request) (enums.Category, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("category"))
	if raw == "" {
		return "", nil
	}
	category, err := enums.ParseCategory(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").WithDetails(map[string]any{"field": "category"})
	}
	return category, nil
}

// ParseQueryClassifier reads an optional ?classifier= parameter.
func ParseQueryClassifier(r *http.Request) (enums.Classifier, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("classifier"))
	if raw == "" {
		return "", nil
	}
	classifier, err := enums.ParseClassifier(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid classifier").WithDetails(map[string]any{"field": "classifier"})
	}
	return classifier, nil
}
