package scheduler

import (
	"testing"
	"time"
)

func result(name string, success bool) JobResult {
	now := time.Now()
	return JobResult{JobName: name, StartTime: now, EndTime: now, Success: success}
}

func TestJobHistoryCap(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(result("news_scan", true))
	}
	if len(h.Results) != 100 {
		t.Errorf("history length = %d, want capped at 100", len(h.Results))
	}
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	if got := h.GetSuccessRate(); got != 0.0 {
		t.Errorf("empty success rate = %v, want 0", got)
	}

	h.AddResult(result("news_scan", true))
	h.AddResult(result("news_scan", true))
	h.AddResult(result("news_scan", false))

	if got := h.GetSuccessRate(); got < 0.66 || got > 0.67 {
		t.Errorf("success rate = %v, want ~0.667", got)
	}
	if got := len(h.GetFailedResults()); got != 1 {
		t.Errorf("failed results = %d, want 1", got)
	}
	if got := len(h.GetLatestResults(2)); got != 2 {
		t.Errorf("latest results = %d, want 2", got)
	}
}
