package store_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/faramade/ecotrack/store"
)

var _ = Describe("SQLiteStore", func() {
	var (
		s   *store.SQLiteStore
		ctx context.Context
	)

	BeforeEach(func() {
		var err error
		s, err = store.NewSQLiteStore(":memory:")
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	Describe("NewSQLiteStore", func() {
		It("creates a store with a file database", func() {
			dir, err := os.MkdirTemp("", "ecotrack-test-*")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(dir)

			fileStore, err := store.NewSQLiteStore(filepath.Join(dir, "ecotrack.db"))
			Expect(err).NotTo(HaveOccurred())
			Expect(fileStore.Close()).To(Succeed())
		})
	})

	Describe("AppendTurn and Turns", func() {
		It("replays turns in append order", func() {
			_, err := s.AppendTurn(ctx, "ada", "user", "I drove to work today")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AppendTurn(ctx, "ada", "assistant", "Your estimated carbon score is 4800g CO2e")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AppendTurn(ctx, "ada", "user", "What about cycling?")
			Expect(err).NotTo(HaveOccurred())

			turns, err := s.Turns(ctx, "ada")
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(HaveLen(3))
			Expect(turns[0].Content).To(Equal("I drove to work today"))
			Expect(turns[1].Content).To(Equal("Your estimated carbon score is 4800g CO2e"))
			Expect(turns[2].Content).To(Equal("What about cycling?"))
			Expect(turns[0].ID).To(BeNumerically("<", turns[1].ID))
			Expect(turns[1].ID).To(BeNumerically("<", turns[2].ID))
		})

		It("returns an empty slice for a user with no history", func() {
			turns, err := s.Turns(ctx, "nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(turns).To(BeEmpty())
		})

		It("keeps per-user order under interleaved appends", func() {
			_, err := s.AppendTurn(ctx, "ada", "user", "a1")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AppendTurn(ctx, "bob", "user", "b1")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AppendTurn(ctx, "ada", "assistant", "a2")
			Expect(err).NotTo(HaveOccurred())
			_, err = s.AppendTurn(ctx, "bob", "assistant", "b2")
			Expect(err).NotTo(HaveOccurred())

			adaTurns, err := s.Turns(ctx, "ada")
			Expect(err).NotTo(HaveOccurred())
			Expect(adaTurns).To(HaveLen(2))
			Expect(adaTurns[0].Content).To(Equal("a1"))
			Expect(adaTurns[1].Content).To(Equal("a2"))

			bobTurns, err := s.Turns(ctx, "bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(bobTurns).To(HaveLen(2))
			Expect(bobTurns[0].Content).To(Equal("b1"))
			Expect(bobTurns[1].Content).To(Equal("b2"))
		})

		It("never leaks turns across users", func() {
			_, err := s.AppendTurn(ctx, "ada", "user", "private question")
			Expect(err).NotTo(HaveOccurred())

			bobTurns, err := s.Turns(ctx, "bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(bobTurns).To(BeEmpty())
		})
	})

	Describe("CreateUser and UserByLogin", func() {
		It("finds a user by username or email", func() {
			created, err := s.CreateUser(ctx, "ada", "ada@example.com", "$2a$10$hash")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))

			byName, err := s.UserByLogin(ctx, "ada")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName.Email).To(Equal("ada@example.com"))

			byEmail, err := s.UserByLogin(ctx, "ada@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(byEmail.Username).To(Equal("ada"))
		})

		It("rejects duplicate usernames", func() {
			_, err := s.CreateUser(ctx, "ada", "ada@example.com", "$2a$10$hash")
			Expect(err).NotTo(HaveOccurred())

			_, err = s.CreateUser(ctx, "ada", "other@example.com", "$2a$10$hash")
			Expect(err).To(MatchError(store.ErrDuplicateUser))
		})

		It("rejects duplicate emails", func() {
			_, err := s.CreateUser(ctx, "ada", "ada@example.com", "$2a$10$hash")
			Expect(err).NotTo(HaveOccurred())

			_, err = s.CreateUser(ctx, "ada2", "ada@example.com", "$2a$10$hash")
			Expect(err).To(MatchError(store.ErrDuplicateUser))
		})

		It("returns ErrUserNotFound for unknown logins", func() {
			_, err := s.UserByLogin(ctx, "ghost")
			Expect(err).To(MatchError(store.ErrUserNotFound))
		})
	})
})
