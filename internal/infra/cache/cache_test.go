package cache_test

import (
	"context"
	"errors"
	"essensys-server/internal/infra/cache"
	"sync"
	"sync/atomic"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/sync/singleflight"
)

var _ = ginkgo.Describe("RistrettoCache", func() {
	var (
		store *cache.RistrettoCache
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		store, err = cache.NewRistrettoCache(nil)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		store.Close()
	})

	ginkgo.It("should return what was set", func() {
		gomega.Expect(store.Set(ctx, "actions", []byte(`[1]`), time.Minute)).To(gomega.BeTrue())

		value, found := store.Get(ctx, "actions")
		gomega.Expect(found).To(gomega.BeTrue())
		gomega.Expect(value).To(gomega.Equal([]byte(`[1]`)))
	})

	ginkgo.It("should miss unknown and deleted keys", func() {
		_, found := store.Get(ctx, "missing")
		gomega.Expect(found).To(gomega.BeFalse())

		store.Set(ctx, "actions", []byte(`[]`), time.Minute)
		store.Delete(ctx, "actions")
		_, found = store.Get(ctx, "actions")
		gomega.Expect(found).To(gomega.BeFalse())
	})

	ginkgo.It("should expire entries after their ttl", func() {
		store.Set(ctx, "short", []byte(`x`), 50*time.Millisecond)

		gomega.Eventually(func() bool {
			_, found := store.Get(ctx, "short")
			return found
		}).WithTimeout(2 * time.Second).Should(gomega.BeFalse())
	})

	ginkgo.It("should not read with a cancelled context", func() {
		store.Set(ctx, "actions", []byte(`[]`), time.Minute)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, found := store.Get(cancelled, "actions")
		gomega.Expect(found).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("GetOrLoad", func() {
	var (
		store *cache.RistrettoCache
		group *singleflight.Group
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		var err error
		store, err = cache.NewRistrettoCache(nil)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		group = &singleflight.Group{}
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		store.Close()
	})

	ginkgo.It("should load once and serve later reads from the cache", func() {
		var loads atomic.Int32
		load := func(context.Context) ([]byte, bool, error) {
			loads.Add(1)
			return []byte(`loaded`), true, nil
		}

		for range 3 {
			value, err := cache.GetOrLoad(ctx, store, group, "key", time.Minute, load)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(value).To(gomega.Equal([]byte(`loaded`)))
		}
		gomega.Expect(loads.Load()).To(gomega.Equal(int32(1)))
	})

	ginkgo.It("should share one load between concurrent misses", func() {
		var loads atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) ([]byte, bool, error) {
			loads.Add(1)
			<-release
			return []byte(`v`), true, nil
		}

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer ginkgo.GinkgoRecover()
				_, err := cache.GetOrLoad(ctx, store, group, "shared", time.Minute, load)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			}()
		}
		gomega.Eventually(loads.Load).Should(gomega.Equal(int32(1)))
		close(release)
		wg.Wait()

		gomega.Expect(loads.Load()).To(gomega.BeNumerically("<=", 5))
		_, found := store.Get(ctx, "shared")
		gomega.Expect(found).To(gomega.BeTrue())
	})

	ginkgo.It("should hand out values the loader marks as not cacheable without storing them", func() {
		value, err := cache.GetOrLoad(ctx, store, group, "key", time.Minute, func(context.Context) ([]byte, bool, error) {
			return []byte(`outdated`), false, nil
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(value).To(gomega.Equal([]byte(`outdated`)))

		_, found := store.Get(ctx, "key")
		gomega.Expect(found).To(gomega.BeFalse())
	})

	ginkgo.It("should not cache failed loads", func() {
		boom := errors.New("boom")
		_, err := cache.GetOrLoad(ctx, store, group, "key", time.Minute, func(context.Context) ([]byte, bool, error) {
			return nil, true, boom
		})
		gomega.Expect(err).To(gomega.MatchError(boom))

		_, found := store.Get(ctx, "key")
		gomega.Expect(found).To(gomega.BeFalse())
	})
})
