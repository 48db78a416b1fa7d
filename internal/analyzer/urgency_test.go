package analyzer

import (
	"context"
	"testing"

	"github.com/phishscan/phishscan/internal/model"
)

func TestUrgencyAnalyze(t *testing.T) {
	t.Parallel()

	a := NewUrgency()

	tests := []struct {
		name      string
		html      string
		wantJS    float64
		wantHTML  float64
		wantScore float64
	}{
		{
			name:      "no timers",
			html:      "<p>welcome to our ordinary page</p>",
			wantJS:    0,
			wantHTML:  0,
			wantScore: 0,
		},
		{
			name:      "setTimeout",
			html:      `<script>setTimeout(function(){}, 1000);</script>`,
			wantJS:    1,
			wantHTML:  0,
			wantScore: 1,
		},
		{
			name:      "setInterval spaced",
			html:      `<script>setInterval (tick, 100);</script>`,
			wantJS:    1,
			wantHTML:  0,
			wantScore: 1,
		},
		{
			name:      "date arithmetic",
			html:      `<script>var end = new Date(2030, 1, 1).getTime();</script>`,
			wantJS:    1,
			wantHTML:  0,
			wantScore: 1,
		},
		{
			name:      "countdown element id",
			html:      `<div id="countdown">59</div>`,
			wantJS:    0,
			wantHTML:  1,
			wantScore: 1,
		},
		{
			name:      "timer class",
			html:      `<span class="timer">soon</span>`,
			wantJS:    0,
			wantHTML:  1,
			wantScore: 1,
		},
		{
			name:      "clock digits",
			html:      `<p>offer ends in 09:59</p>`,
			wantJS:    0,
			wantHTML:  1,
			wantScore: 1,
		},
		{
			name:      "only seconds left",
			html:      `<p>Only 30 seconds left!</p>`,
			wantJS:    0,
			wantHTML:  1,
			wantScore: 1,
		},
		{
			name:      "hurry up copy",
			html:      `<p>Hurry up, this expires in moments</p>`,
			wantJS:    0,
			wantHTML:  1,
			wantScore: 1,
		},
		{
			name:      "both timer kinds",
			html:      `<div id="countdown"></div><script>setInterval(tick, 1000);</script>`,
			wantJS:    1,
			wantHTML:  1,
			wantScore: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := a.Analyze(context.Background(), newTarget("http://example.com", tt.html))
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if got := res.Values[model.FieldHasJSTimer]; got != tt.wantJS {
				t.Errorf("has_js_timer = %g, want %g", got, tt.wantJS)
			}
			if got := res.Values[model.FieldHasHTMLTimer]; got != tt.wantHTML {
				t.Errorf("has_html_timer = %g, want %g", got, tt.wantHTML)
			}
			if got := res.Values[model.FieldTimerUrgencyScore]; got != tt.wantScore {
				t.Errorf("timer_urgency_score = %g, want %g", got, tt.wantScore)
			}
		})
	}
}
