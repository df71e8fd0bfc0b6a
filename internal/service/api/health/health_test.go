package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ok(context.Context) error { return nil }

// =============================================================================
// Checker
// =============================================================================

func TestChecker_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		probes      []Probe
		wantHealthy bool
		wantType    map[string]apperrors.ErrorType
	}{
		{
			name:        "프로브 없음",
			wantHealthy: true,
		},
		{
			name:        "모든 프로브 성공",
			probes:      []Probe{{"a", ok}, {"b", ok}},
			wantHealthy: true,
		},
		{
			name: "하나라도 실패하면 비정상",
			probes: []Probe{
				{"a", ok},
				{"b", func(context.Context) error { return errors.New("down") }},
			},
			wantHealthy: false,
			wantType:    map[string]apperrors.ErrorType{"b": apperrors.Unavailable},
		},
		{
			name:        "nil CheckFunc",
			probes:      []Probe{{"nil", nil}},
			wantHealthy: false,
			wantType:    map[string]apperrors.ErrorType{"nil": apperrors.Internal},
		},
		{
			name:        "panic 복구",
			probes:      []Probe{{"panic", func(context.Context) error { panic("boom") }}},
			wantHealthy: false,
			wantType:    map[string]apperrors.ErrorType{"panic": apperrors.Internal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewChecker(time.Second, tt.probes...).Check(context.Background())

			assert.Equal(t, tt.wantHealthy, report.Healthy())
			assert.Len(t, report.Results, len(tt.probes))
			for name, typ := range tt.wantType {
				require.Error(t, report.Results[name].Err)
				assert.Equal(t, typ, apperrors.UnderlyingType(report.Results[name].Err))
			}
		})
	}
}

func TestChecker_Timeout(t *testing.T) {
	t.Parallel()

	slow := Probe{Name: "slow", Check: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	start := time.Now()
	report := NewChecker(20*time.Millisecond, slow).Check(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, report.Healthy())
	assert.True(t, apperrors.Is(report.Results["slow"].Err, apperrors.Timeout))
}

func TestChecker_RunsConcurrently(t *testing.T) {
	t.Parallel()

	var running atomic.Int32
	var peak atomic.Int32
	probe := func(context.Context) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return nil
	}

	report := NewChecker(time.Second, Probe{"a", probe}, Probe{"b", probe}, Probe{"c", probe}).Check(context.Background())

	assert.True(t, report.Healthy())
	assert.Greater(t, peak.Load(), int32(1))
}

func TestNewChecker_DefaultTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTimeout, NewChecker(0).timeout)
	assert.Equal(t, DefaultTimeout, NewChecker(-time.Second).timeout)
}

func TestReport_Names(t *testing.T) {
	t.Parallel()

	report := NewChecker(time.Second, Probe{"b", ok}, Probe{"a", ok}).Check(context.Background())

	assert.Equal(t, []string{"a", "b"}, report.Names())
}

// =============================================================================
// JSONDocumentProbe
// =============================================================================

func TestJSONDocumentProbe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assert.NoError(t, JSONDocumentProbe(func() string { return `{"swagger":"2.0"}` })(ctx))
	assert.Error(t, JSONDocumentProbe(func() string { return `{"swagger":` })(ctx))
	assert.Error(t, JSONDocumentProbe(nil)(ctx))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, JSONDocumentProbe(func() string { return `{}` })(canceled), context.Canceled)
}
