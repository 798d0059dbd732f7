package httpapi_test

import (
	"encoding/json"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/httpapi"
	mockusecases "essensys-server/test/unit/doubles/exchange/usecases"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("AdminController", func() {
	var (
		ctrl        *gomock.Controller
		mockActions *mockusecases.MockActionService
		mockStatus  *mockusecases.MockStatusService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockActions = mockusecases.NewMockActionService(ctrl)
		mockStatus = mockusecases.NewMockStatusService(ctrl)
		router = http.NewServeMux()
		httpapi.NewAdminController(mockActions, mockStatus).AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	DescribeTable("accepted bodies",
		func(body string, expected []domain.ExchangeKV) {
			mockActions.EXPECT().Inject(gomock.Any(), gomock.Any(), expected).
				Return(domain.Action{GUID: "g-1"}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/admin/inject", strings.NewReader(body)))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var response map[string]string
			Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
			Expect(response).To(Equal(map[string]string{"status": "ok", "guid": "g-1"}))
		},
		Entry("single object", `{"k":615,"v":"1"}`, []domain.ExchangeKV{{K: 615, V: "1"}}),
		Entry("array", ` [{"k":615,"v":"1"},{"k":349,"v":"2"}]`, []domain.ExchangeKV{{K: 615, V: "1"}, {K: 349, V: "2"}}),
	)

	DescribeTable("rejected bodies",
		func(body string) {
			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/admin/inject", strings.NewReader(body)))
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		},
		Entry("not json", `hello`),
		Entry("empty array", `[]`),
		Entry("null", `null`),
		Entry("wrong value type", `{"k":615,"v":1}`),
	)

	It("should answer 400 for indices out of range", func() {
		mockActions.EXPECT().Inject(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.Action{}, fmt.Errorf("building action: %w", domain.ErrIndexOutOfRange))

		router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/admin/inject", strings.NewReader(`{"k":5000,"v":"1"}`)))

		Expect(recorder.Code).To(Equal(http.StatusBadRequest))
	})

	Context("client snapshots", func() {
		It("should report the connection state and the requested values", func() {
			mockStatus.EXPECT().Snapshot(gomock.Any(), "client-1", []domain.Index{349, 590}).
				Return(domain.ClientSnapshot{
					ClientID:  "client-1",
					Connected: false,
					Values:    []domain.ExchangeKV{{K: 349, V: "42"}},
				}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/admin/clients/client-1?k=349&k=590", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"client_id":"client-1","connected":false,"values":[{"k":349,"v":"42"}]}`))
		})

		It("should read the whole table without k parameters", func() {
			mockStatus.EXPECT().Snapshot(gomock.Any(), "client-1", []domain.Index{}).
				Return(domain.ClientSnapshot{ClientID: "client-1", Connected: true}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/admin/clients/client-1", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`{"client_id":"client-1","connected":true,"values":[]}`))
		})

		It("should answer 400 for a non numeric index", func() {
			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/admin/clients/client-1?k=abc", nil))
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 400 for indices out of range", func() {
			mockStatus.EXPECT().Snapshot(gomock.Any(), "client-1", []domain.Index{5000}).
				Return(domain.ClientSnapshot{}, fmt.Errorf("%w: 5000", domain.ErrIndexOutOfRange))

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/admin/clients/client-1?k=5000", nil))
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
