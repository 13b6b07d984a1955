//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/handler/api"
	reqdto "gear-ledger/internal/handler/dto/request"
	resdto "gear-ledger/internal/handler/dto/response"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"
	"gear-ledger/internal/usecase/shared"
	"gear-ledger/tests/common/builder"
	"gear-ledger/tests/common/httptest"
	"gear-ledger/tests/common/testutil"
	commandsmock "gear-ledger/tests/mock/commands"
	queriesmock "gear-ledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTransactionCommands
	mockQueries  *queriesmock.MockTransactionQueries
	actor        shared.Actor
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTransactionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTransactionQueries(s.mockCtrl)
	h := api.NewTransactionHandler(s.mockCommands, s.mockQueries)

	s.actor = newActor(user.RoleOperator)
	auth := fakeAuth(s.actor)

	s.router.POST("/transactions", auth, h.Process)
	s.router.POST("/transactions/batch", auth, h.ProcessBatch)
	s.router.POST("/transactions/preflight", auth, h.Preflight)
	s.router.GET("/transactions/:id", auth, h.Get)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

type testCaseTransaction struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestProcess
// ================================================================================

func (s *TransactionHandlerTestSuite) TestProcess() {
	url := "/transactions"
	assetID := uuid.New()
	reqBody := reqdto.ProcessTransactionRequest{AssetID: assetID, Type: "CHECK_OUT", Notes: "shoot on location"}

	checkout, err := ledger.NewCheckout(assetID, s.actor.ID, s.actor.ID, "shoot on location", nil, t0)
	s.Require().NoError(err)
	result := &commands.ProcessResult{Transaction: checkout}

	s.Run("success: returns 201 with the stored transaction", func() {
		s.mockCommands.EXPECT().Process(gomock.Any(), reqBody.ToCommand(), s.actor).
			Return(result, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), checkout.ID()).
			Return(transactionView(checkout.ID(), assetID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(checkout.ID(), body.ID)
		s.Equal("CHECK_OUT", body.Type)
		s.Equal("ACTIVE", body.Status)
		s.True(t0.Equal(body.CheckoutAt))
	})

	s.Run("success: read-back failure still returns 201 from the committed record", func() {
		camera := builder.NewAssetBuilder().WithID(assetID).WithName("Sony FX3").WithStatus(asset.StatusCheckedOut).BuildDomain()
		s.mockCommands.EXPECT().Process(gomock.Any(), reqBody.ToCommand(), s.actor).
			Return(&commands.ProcessResult{Transaction: checkout, Asset: camera}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), checkout.ID()).
			Return(nil, errors.New("read replica unavailable")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(checkout.ID(), body.ID)
		s.Equal(assetID, body.AssetID)
		s.Equal("Sony FX3", body.AssetName)
		s.Equal("ACTIVE", body.Status)
		s.Equal("shoot on location", body.Notes)
		s.Nil(body.UserName)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseTransaction{
			{name: "missing field: assetId", mutate: testutil.Field("assetId", nil), expectCode: http.StatusBadRequest},
			{name: "nil assetId", mutate: testutil.Field("assetId", uuid.Nil.String()), expectCode: http.StatusBadRequest},
			{name: "missing field: type", mutate: testutil.Field("type", nil), expectCode: http.StatusBadRequest},
			{name: "unknown type", mutate: testutil.Field("type", "LEND"), expectCode: http.StatusBadRequest},
			{name: "notes too long (2001 chars)", mutate: testutil.Field("notes", strings.Repeat("a", 2001)), expectCode: http.StatusBadRequest},
			{name: "malformed return date", mutate: testutil.Field("expectedReturnDate", "next week"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: malformed JSON", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, `{"assetId":`, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown asset",
				commandsError:  commands.ErrAssetNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "asset not found",
			},
			{
				name:           "rejected transition",
				commandsError:  errs.Mark(errs.New("asset is already checked out"), errs.ErrInvalidTransition),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "already checked out",
			},
			{
				name:           "lost a concurrent race",
				commandsError:  commands.ErrConcurrentUpdate,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "modified concurrently",
			},
			{
				name:           "return date in the past",
				commandsError:  commands.ErrInvalidReturnDate,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "expected return date",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("connection reset by peer"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Transaction failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestProcessBatch
// ================================================================================

func (s *TransactionHandlerTestSuite) TestProcessBatch() {
	url := "/transactions/batch"
	ok, busy := uuid.New(), uuid.New()
	txID := uuid.New()
	reqBody := reqdto.BatchTransactionRequest{
		Action: "CHECK_OUT",
		Items:  []reqdto.BatchItemRequest{{AssetID: ok}, {AssetID: busy}},
	}

	s.Run("部分的に失敗しても200でレポートを返す", func() {
		report := &commands.BatchReport{
			Processed: 1,
			Total:     2,
			Results: []commands.BatchItemResult{
				{AssetID: ok, Status: commands.ItemStatusSuccess, TransactionID: &txID},
				{AssetID: busy, Status: commands.ItemStatusError, Error: "asset is already checked out"},
			},
			Errors: []string{"asset " + busy.String() + ": asset is already checked out"},
		}
		s.mockCommands.EXPECT().ProcessBatch(gomock.Any(), reqBody.ToCommand(), gomock.Any()).
			Return(report, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.BatchReportResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Processed)
		s.Equal(2, body.Total)
		s.Require().Len(body.Results, 2)
		s.Equal(txID, *body.Results[0].TransactionID)
		s.Equal("error", body.Results[1].Status)
		s.Len(body.Errors, 1)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseTransaction{
			{name: "empty items", mutate: testutil.Field("items", []any{}), expectCode: http.StatusBadRequest},
			{name: "missing field: items", mutate: testutil.Field("items", nil), expectCode: http.StatusBadRequest},
			{name: "item without assetId", mutate: testutil.Field("items", []any{map[string]any{"notes": "x"}}), expectCode: http.StatusBadRequest},
			{name: "unknown action", mutate: testutil.Field("action", "RETIRE"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: batch over the configured ceiling", func() {
		s.mockCommands.EXPECT().ProcessBatch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrBatchTooLarge).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "maximum number of items")
	})
}

// ================================================================================
// TestGet / TestPreflight
// ================================================================================

func (s *TransactionHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(transactionView(id, uuid.New()), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/transactions/"+id.String(), nil, bearer)

		var body resdto.TransactionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal("Sony FX3", body.AssetName)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/transactions/not-a-uuid", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid transaction id")
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, queries.ErrTransactionNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/transactions/"+uuid.NewString(), nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "transaction not found")
	})
}

func (s *TransactionHandlerTestSuite) TestPreflight() {
	url := "/transactions/preflight"
	a, b := uuid.New(), uuid.New()

	s.Run("success: one allowed and one blocked", func() {
		s.mockQueries.EXPECT().Preflight(gomock.Any(), asset.ActionCheckOut, []uuid.UUID{a, b}).
			Return([]queries.PreflightResult{
				{AssetID: a, Allowed: true, CurrentStatus: "AVAILABLE"},
				{AssetID: b, Allowed: false, Reason: "asset is retired", CurrentStatus: "RETIRED"},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.PreflightRequest{Action: "CHECK_OUT", AssetIDs: []uuid.UUID{a, b}}, bearer)

		var body resdto.PreflightResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Results, 2)
		s.True(body.Results[0].Allowed)
		s.Equal("asset is retired", body.Results[1].Reason)
	})

	s.Run("error: empty cart", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.PreflightRequest{Action: "CHECK_OUT", AssetIDs: []uuid.UUID{}}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
