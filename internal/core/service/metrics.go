package service

import "github.com/brandbook/entries-api/internal/core/ports"

type nopMetrics struct{}

func (nopMetrics) AuthAttempt(string, string)   {}
func (nopMetrics) EntryMutation(string, string) {}
func (nopMetrics) ImageUpload(string, int)      {}

func orNop(m ports.Metrics) ports.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
