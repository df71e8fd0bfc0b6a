// Package health 이름이 붙은 프로브들을 실행하여 서비스 의존성의 상태를 집계합니다.
package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "github.com/clarusmens/clarus-mens/internal/pkg/errors"
	"github.com/clarusmens/clarus-mens/internal/pkg/jsonutil"
)

// DefaultTimeout 프로브 하나에 허용되는 기본 실행 시간입니다.
const DefaultTimeout = 2 * time.Second

// CheckFunc 의존성을 확인하는 함수입니다. 의존성을 사용할 수 없으면 에러를 반환합니다.
type CheckFunc func(ctx context.Context) error

// Probe 이름이 붙은 CheckFunc입니다.
type Probe struct {
	Name  string
	Check CheckFunc
}

// Result 프로브 하나의 실행 결과입니다.
type Result struct {
	Err     error
	Latency time.Duration
}

// Healthy 프로브가 성공했는지 여부를 반환합니다.
func (r Result) Healthy() bool {
	return r.Err == nil
}

// Report 모든 프로브의 실행 결과입니다.
type Report struct {
	Results map[string]Result
}

// Healthy 모든 프로브가 성공했는지 여부를 반환합니다. 프로브가 없으면 true입니다.
func (r Report) Healthy() bool {
	for _, res := range r.Results {
		if !res.Healthy() {
			return false
		}
	}
	return true
}

// Names 프로브 이름을 정렬하여 반환합니다.
func (r Report) Names() []string {
	names := make([]string, 0, len(r.Results))
	for name := range r.Results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checker 등록된 프로브를 동시에 실행합니다. 생성 후에는 변경되지 않습니다.
type Checker struct {
	probes  []Probe
	timeout time.Duration
}

// NewChecker Checker를 생성합니다. timeout이 0 이하이면 DefaultTimeout을 사용합니다.
func NewChecker(timeout time.Duration, probes ...Probe) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Checker{
		probes:  append([]Probe(nil), probes...),
		timeout: timeout,
	}
}

// Check 모든 프로브를 실행하고 결과를 반환합니다.
//
// 각 프로브는 timeout이 적용된 ctx로 실행되며, 시간 내에 끝나지 않으면 Timeout 에러로 기록됩니다.
// 프로브에서 발생한 panic은 Internal 에러로 기록됩니다.
func (c *Checker) Check(ctx context.Context) Report {
	report := Report{Results: make(map[string]Result, len(c.probes))}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, p := range c.probes {
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()

			res := c.run(ctx, p)

			mu.Lock()
			report.Results[p.Name] = res
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	return report
}

func (c *Checker) run(parent context.Context, p Probe) Result {
	if p.Check == nil {
		return Result{Err: apperrors.Newf(apperrors.Internal, "%s 프로브의 CheckFunc가 nil입니다", p.Name)}
	}

	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- apperrors.Newf(apperrors.Internal, "%s 프로브 실행 중 panic 발생: %v", p.Name, r)
			}
		}()
		done <- p.Check(ctx)
	}()

	select {
	case err := <-done:
		if err == nil {
			return Result{Latency: time.Since(start)}
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c.timeoutResult(p, ctx.Err(), start)
		}
		return Result{
			Err:     apperrors.Wrapf(err, apperrors.Unavailable, "%s 프로브 실패", p.Name),
			Latency: time.Since(start),
		}
	case <-ctx.Done():
		return c.timeoutResult(p, ctx.Err(), start)
	}
}

func (c *Checker) timeoutResult(p Probe, cause error, start time.Time) Result {
	return Result{
		Err:     apperrors.Wrapf(cause, apperrors.Timeout, "%s 프로브가 제한 시간(%s) 내에 응답하지 않았습니다", p.Name, c.timeout),
		Latency: time.Since(start),
	}
}

// JSONDocumentProbe read가 반환하는 문서가 올바른 JSON인지 확인하는 CheckFunc를 만듭니다.
func JSONDocumentProbe(read func() string) CheckFunc {
	return func(ctx context.Context) error {
		if read == nil {
			return fmt.Errorf("문서 제공자가 설정되지 않았습니다")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !jsonutil.Valid([]byte(read())) {
			return fmt.Errorf("문서가 올바른 JSON이 아닙니다")
		}
		return nil
	}
}
