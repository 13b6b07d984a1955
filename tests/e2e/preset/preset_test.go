//go:build e2e

package preset

import (
	"net/http"
	"testing"

	"gear-ledger/internal/domain/user"
	reqdto "gear-ledger/internal/handler/dto/request"
	resdto "gear-ledger/internal/handler/dto/response"
	"gear-ledger/tests/common/dbtest"
	"gear-ledger/tests/common/httptest"
	"gear-ledger/tests/e2e"
	"gear-ledger/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PresetE2ETestSuite struct {
	e2e.SharedSuite
	sessions *helper.JWTTestHelper
}

func TestPresetE2ESuite(t *testing.T) {
	suite.Run(t, new(PresetE2ETestSuite))
}

func (s *PresetE2ETestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.sessions = helper.NewJWTTestHelper(s.Config.JWT)
}

func (s *PresetE2ETestSuite) TestCreateDetectAndSubstitute() {
	operator := s.sessions.CreateSession(s.T(), s.DB, "Olive Operator", user.RoleOperator)
	camera := dbtest.CreateTestAsset(s.T(), s.DB, "Sony FX3", "AVAILABLE", operator.UserID)
	lens := dbtest.CreateTestAsset(s.T(), s.DB, "24-70mm", "AVAILABLE", operator.UserID)
	spareLens := dbtest.CreateTestAsset(s.T(), s.DB, "24-105mm", "AVAILABLE", operator.UserID)
	busyLens := dbtest.CreateTestAsset(s.T(), s.DB, "28-70mm", "CHECKED_OUT", operator.UserID)
	light := dbtest.CreateTestAsset(s.T(), s.DB, "Aputure 300d", "AVAILABLE", operator.UserID)

	optional := false
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/presets", reqdto.CreatePresetRequest{
		Name:     "Interview kit",
		Priority: 2,
		Items: []reqdto.PresetItemRequest{
			{AssetID: &camera},
			{AssetID: &lens, Substitutions: []reqdto.SubstitutionRequest{
				{SubstituteAssetID: spareLens, Preference: 1},
				{SubstituteAssetID: busyLens, Preference: 2},
			}},
			{AssetID: &light, IsRequired: &optional},
		},
	}, operator.Token)

	var created resdto.PresetResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	s.Require().Len(created.Items, 3)
	lensItem := created.Items[1].ID

	s.Run("scanning a substitute still matches the preset", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/presets/detect",
			reqdto.DetectRequest{AssetIDs: []uuid.UUID{camera, spareLens}}, operator.Token)

		var body resdto.DetectResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Matches, 1)
		s.Equal(67, body.Matches[0].MatchPercentage)
		s.Equal(2, body.Matches[0].RequiredMatched)
	})

	s.Run("3点中1点でも30%の閾値を超えれば候補になる", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/presets/detect",
			reqdto.DetectRequest{AssetIDs: []uuid.UUID{light}}, operator.Token)

		var body resdto.DetectResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Matches, 1)
		s.Equal(33, body.Matches[0].MatchPercentage)
	})

	s.Run("only available declared substitutes survive validation", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			"/api/presets/"+created.ID.String()+"/substitutions/validate",
			reqdto.ValidateSubstitutionsRequest{Substitutions: map[string]string{
				lensItem.String():  busyLens.String(),
				uuid.NewString():   spareLens.String(),
				"not-even-an-uuid": spareLens.String(),
			}}, operator.Token)

		var body resdto.ValidateSubstitutionsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(3, body.Summary.Requested)
		s.Equal(0, body.Summary.Valid)
		s.Empty(body.ValidSubstitutions)
	})

	s.Run("error: duplicate preset name", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/presets", reqdto.CreatePresetRequest{
			Name:  "Interview kit",
			Items: []reqdto.PresetItemRequest{{Category: "audio", DisplayName: "Lav mic"}},
		}, operator.Token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/presets", nil, operator.Token)
	var list struct {
		Presets []resdto.PresetResponse `json:"presets"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
	s.Len(list.Presets, 1)
}
