// Package obs berisi utilitas observability (logging).
package obs

import "go.uber.org/zap"

func NewLogger(service string) (*zap.Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", service)), nil
}
