package async_test

import (
	"context"
	"essensys-server/internal/infra/async"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingWorker struct {
	runs      *atomic.Int32
	shutdowns *[]string
	name      string
}

func (w countingWorker) Run(ctx context.Context, done func()) {
	defer done()
	w.runs.Add(1)
	<-ctx.Done()
}

func (w countingWorker) Shutdown() {
	*w.shutdowns = append(*w.shutdowns, w.name)
}

var _ = Describe("Workers", func() {
	It("should wait for every worker after cancellation", func() {
		var runs atomic.Int32
		var shutdowns []string
		first := countingWorker{runs: &runs, shutdowns: &shutdowns, name: "first"}
		second := countingWorker{runs: &runs, shutdowns: &shutdowns, name: "second"}

		ctx, cancel := context.WithCancel(context.Background())
		wait := async.RunWorkers(ctx, first, second)
		Eventually(runs.Load).Should(BeEquivalentTo(2))

		cancel()
		finished := make(chan struct{})
		go func() {
			wait()
			close(finished)
		}()
		Eventually(finished).Should(BeClosed())

		async.ShutdownWorkers(first, second)
		Expect(shutdowns).To(Equal([]string{"second", "first"}))
	})
})
