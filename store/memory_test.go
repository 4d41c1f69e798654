package store_test

import (
	"context"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faramade/ecotrack/store"
)

var _ = Describe("MemoryStore", func() {
	var (
		s   *store.MemoryStore
		ctx context.Context
	)

	BeforeEach(func() {
		s = store.NewMemoryStore()
		ctx = context.Background()
	})

	It("replays turns in append order", func() {
		_, err := s.AppendTurn(ctx, "ada", "user", "first")
		Expect(err).NotTo(HaveOccurred())
		_, err = s.AppendTurn(ctx, "ada", "assistant", "second")
		Expect(err).NotTo(HaveOccurred())

		turns, err := s.Turns(ctx, "ada")
		Expect(err).NotTo(HaveOccurred())
		Expect(turns).To(HaveLen(2))
		Expect(turns[0].Content).To(Equal("first"))
		Expect(turns[1].Content).To(Equal("second"))
	})

	It("returns copies that later appends do not mutate", func() {
		_, err := s.AppendTurn(ctx, "ada", "user", "first")
		Expect(err).NotTo(HaveOccurred())

		before, err := s.Turns(ctx, "ada")
		Expect(err).NotTo(HaveOccurred())

		_, err = s.AppendTurn(ctx, "ada", "assistant", "second")
		Expect(err).NotTo(HaveOccurred())

		Expect(before).To(HaveLen(1))
	})

	It("treats usernames as taken case-insensitively", func() {
		_, err := s.CreateUser(ctx, "Ada", "ada@example.com", "hash")
		Expect(err).NotTo(HaveOccurred())

		_, err = s.CreateUser(ctx, "ada", "other@example.com", "hash")
		Expect(err).To(MatchError(store.ErrDuplicateUser))
	})

	It("supports concurrent appends for different users", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				user := fmt.Sprintf("user-%d", n)
				for j := 0; j < 20; j++ {
					_, err := s.AppendTurn(ctx, user, "user", fmt.Sprintf("msg-%d", j))
					Expect(err).NotTo(HaveOccurred())
				}
			}(i)
		}
		wg.Wait()

		for i := 0; i < 8; i++ {
			turns, err := s.Turns(ctx, fmt.Sprintf("user-%d", i))
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(20))
			for j, turn := range turns {
				Expect(turn.Content).To(Equal(fmt.Sprintf("msg-%d", j)))
			}
		}
	})
})
