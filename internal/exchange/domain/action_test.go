package domain_test

import (
	"essensys-server/internal/exchange/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Action", func() {
	Context("GenerateCompleteBlock", func() {
		When("a light index is injected", func() {
			It("should synthesize the whole block and the scenario trigger", func() {
				params := domain.GenerateCompleteBlock([]domain.ExchangeKV{{K: 615, V: "1"}})

				Expect(params).To(HaveLen(19))
				Expect(params[0]).To(Equal(domain.ExchangeKV{K: domain.IndexScenario, V: "1"}))

				action := domain.Action{Params: params}
				value, ok := action.Param(605)
				Expect(ok).To(BeTrue())
				Expect(value).To(Equal("0"))

				value, ok = action.Param(615)
				Expect(ok).To(BeTrue())
				Expect(value).To(Equal("1"))

				for i := domain.IndexLightStart; i <= domain.IndexLightEnd; i++ {
					_, ok := action.Param(i)
					Expect(ok).To(BeTrue(), "index %d missing", i)
				}
			})

			It("should keep an explicit scenario value", func() {
				params := domain.GenerateCompleteBlock([]domain.ExchangeKV{
					{K: 590, V: "7"},
					{K: 606, V: "64"},
				})

				Expect(params[0]).To(Equal(domain.ExchangeKV{K: 590, V: "7"}))
				value, _ := domain.Action{Params: params}.Param(606)
				Expect(value).To(Equal("64"))
			})

			It("should sort params by index", func() {
				params := domain.GenerateCompleteBlock([]domain.ExchangeKV{
					{K: 700, V: "x"},
					{K: 622, V: "2"},
				})

				for i := 1; i < len(params); i++ {
					Expect(params[i-1].K).To(BeNumerically("<", params[i].K))
				}
				Expect(params[len(params)-1]).To(Equal(domain.ExchangeKV{K: 700, V: "x"}))
			})
		})

		When("no light index is present", func() {
			It("should return params untouched", func() {
				in := []domain.ExchangeKV{{K: 349, V: "3"}, {K: 12, V: "1"}}
				Expect(domain.GenerateCompleteBlock(in)).To(Equal(in))
			})
		})
	})

	Context("BitwiseFusion", func() {
		DescribeTable("fusing values",
			func(index domain.Index, existing, incoming, expected string) {
				Expect(domain.BitwiseFusion(index, existing, incoming)).To(Equal(expected))
			},
			Entry("numeric values are OR-ed", domain.Index(605), "1", "4", "5"),
			Entry("same bits stay", domain.Index(605), "3", "1", "3"),
			Entry("scenario is never fused", domain.IndexScenario, "1", "2", "2"),
			Entry("non numeric keeps the latest", domain.Index(605), "abc", "4", "4"),
			Entry("non numeric incoming wins", domain.Index(605), "4", "on", "on"),
		)
	})

	Context("MergeParams", func() {
		It("should fuse overlapping indices and keep the others", func() {
			merged := domain.MergeParams(
				[]domain.ExchangeKV{{K: 605, V: "1"}, {K: 590, V: "1"}},
				[]domain.ExchangeKV{{K: 605, V: "2"}, {K: 590, V: "3"}, {K: 610, V: "8"}},
			)

			Expect(merged).To(Equal([]domain.ExchangeKV{
				{K: 590, V: "3"},
				{K: 605, V: "3"},
				{K: 610, V: "8"},
			}))
		})
	})

	Context("ActionBuilder", func() {
		It("should build an action with a guid and a complete block", func() {
			action, err := domain.NewActionBuilder().
				WithParams([]domain.ExchangeKV{{K: 615, V: "1"}}).
				Build()

			Expect(err).NotTo(HaveOccurred())
			Expect(action.GUID).NotTo(BeEmpty())
			Expect(action.CreatedAt.IsZero()).To(BeFalse())
			value, ok := action.Param(590)
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("1"))
		})

		It("should honour an explicit guid", func() {
			action, err := domain.NewActionBuilder().
				WithGUID("abc").
				WithParams([]domain.ExchangeKV{{K: 349, V: "1"}}).
				Build()

			Expect(err).NotTo(HaveOccurred())
			Expect(action.GUID).To(Equal("abc"))
			Expect(action.Params).To(HaveLen(1))
		})

		It("should reject out of range indices", func() {
			_, err := domain.NewActionBuilder().
				WithParams([]domain.ExchangeKV{{K: 1000, V: "1"}}).
				Build()

			Expect(err).To(MatchError(domain.ErrIndexOutOfRange))
		})

		It("should reject an action without params", func() {
			_, err := domain.NewActionBuilder().Build()
			Expect(err).To(MatchError(domain.ErrEmptyParams))
		})
	})
})

var _ = Describe("ActionBuilder fusion", func() {
	It("should fuse duplicated indices of one injection", func() {
		action, err := domain.NewActionBuilder().
			WithParams([]domain.ExchangeKV{{K: 605, V: "1"}, {K: 605, V: "2"}}).
			Build()

		Expect(err).NotTo(HaveOccurred())
		value, ok := action.Param(605)
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal("3"))
	})
})
