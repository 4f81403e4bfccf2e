package session_test

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	usermodel "github.com/dtalent/hr-client/internal/core/datamodel/user"
	"github.com/dtalent/hr-client/internal/session"
)

func TestSession(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Session Suite")
}

var _ = ginkgo.Describe("Store", func() {
	var store *session.Store

	ginkgo.BeforeEach(func() {
		var err error
		store, err = session.Open(":memory:")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	ginkgo.Describe("Set and Get", func() {
		ginkgo.It("reads back the written value", func() {
			gomega.Expect(store.Set("k", "v")).To(gomega.Succeed())

			value, ok, err := store.Get("k")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(value).To(gomega.Equal("v"))
		})

		ginkgo.It("overwrites an existing key", func() {
			gomega.Expect(store.Set("k", "first")).To(gomega.Succeed())
			gomega.Expect(store.Set("k", "second")).To(gomega.Succeed())

			value, ok, err := store.Get("k")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(value).To(gomega.Equal("second"))
		})

		ginkgo.It("reports a missing key without an error", func() {
			_, ok, err := store.Get("absent")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Clear", func() {
		ginkgo.It("removes all given keys", func() {
			gomega.Expect(store.Set("a", "1")).To(gomega.Succeed())
			gomega.Expect(store.Set("b", "2")).To(gomega.Succeed())

			gomega.Expect(store.Clear("a", "b")).To(gomega.Succeed())

			_, ok, _ := store.Get("a")
			gomega.Expect(ok).To(gomega.BeFalse())
			_, ok, _ = store.Get("b")
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("is a no-op without keys", func() {
			gomega.Expect(store.Clear()).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("session round trip", func() {
		user := usermodel.User{ID: 7, Name: "demo", Email: "demo@x.com", Role: "Usuario"}

		ginkgo.It("persists and restores the token and user", func() {
			gomega.Expect(store.SaveSession("abc", user)).To(gomega.Succeed())

			token, restored, err := store.LoadSession()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).To(gomega.Equal("abc"))
			gomega.Expect(restored).ToNot(gomega.BeNil())
			gomega.Expect(*restored).To(gomega.Equal(user))
		})

		ginkgo.It("keeps a token with a corrupt user record", func() {
			gomega.Expect(store.Set(session.KeyToken, "abc")).To(gomega.Succeed())
			gomega.Expect(store.Set(session.KeyUser, "{not json")).To(gomega.Succeed())

			token, restored, err := store.LoadSession()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).To(gomega.Equal("abc"))
			gomega.Expect(restored).To(gomega.BeNil())
		})

		ginkgo.It("returns zero values when no session exists", func() {
			token, restored, err := store.LoadSession()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).To(gomega.BeEmpty())
			gomega.Expect(restored).To(gomega.BeNil())
		})

		ginkgo.It("clears both keys on logout", func() {
			gomega.Expect(store.SaveSession("abc", user)).To(gomega.Succeed())
			gomega.Expect(store.ClearSession()).To(gomega.Succeed())

			token, restored, err := store.LoadSession()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).To(gomega.BeEmpty())
			gomega.Expect(restored).To(gomega.BeNil())

			authed, err := store.IsAuthenticated()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(authed).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("IsAuthenticated", func() {
		ginkgo.It("requires a non-empty stored token", func() {
			authed, err := store.IsAuthenticated()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(authed).To(gomega.BeFalse())

			gomega.Expect(store.Set(session.KeyToken, "abc")).To(gomega.Succeed())

			authed, err = store.IsAuthenticated()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(authed).To(gomega.BeTrue())
		})
	})
})
