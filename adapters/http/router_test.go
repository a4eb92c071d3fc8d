package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/career-os/internal/application/service"
	authUC "github.com/khoahotran/career-os/internal/application/usecase/auth"
	"github.com/khoahotran/career-os/internal/application/usecase/careercontext"
	"github.com/khoahotran/career-os/internal/application/usecase/generation"
	profileUC "github.com/khoahotran/career-os/internal/application/usecase/profile"
	"github.com/khoahotran/career-os/internal/application/usecase/record"
	"github.com/khoahotran/career-os/internal/application/usecase/usage"
	"github.com/khoahotran/career-os/internal/domain/document"
	"github.com/khoahotran/career-os/internal/domain/education"
	"github.com/khoahotran/career-os/internal/domain/experience"
	"github.com/khoahotran/career-os/internal/domain/profile"
	"github.com/khoahotran/career-os/internal/domain/project"
	"github.com/khoahotran/career-os/internal/domain/skill"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/auth"
	"github.com/khoahotran/career-os/pkg/logger"
)

// memRepo keeps records in insertion order and ignores filters.
type memRepo[T any, F any, P any] struct {
	mu    sync.Mutex
	next  int
	ids   []string
	items map[string]*T
	setID func(*T, string)
}

func newMemRepo[T any, F any, P any](setID func(*T, string)) *memRepo[T, F, P] {
	return &memRepo[T, F, P]{items: map[string]*T{}, setID: setID}
}

func (r *memRepo[T, F, P]) List(context.Context, F) ([]*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*T, 0, len(r.ids))
	for _, id := range r.ids {
		if rec, ok := r.items[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo[T, F, P]) FindByID(_ context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memRepo[T, F, P]) Create(_ context.Context, rec *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := "id-" + strconv.Itoa(r.next)
	r.setID(rec, id)
	r.ids = append(r.ids, id)
	r.items[id] = rec
	return rec, nil
}

func (r *memRepo[T, F, P]) Update(_ context.Context, id string, _ P) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memRepo[T, F, P]) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

type memProfile struct{ p *profile.Profile }

func (m *memProfile) Get(context.Context) (*profile.Profile, error) { return m.p, nil }

func (m *memProfile) Upsert(_ context.Context, p *profile.Profile) (*profile.Profile, error) {
	p.ID = "profile-1"
	p.UpdatedAt = time.Now().UTC()
	m.p = p
	return p, nil
}

type scriptedLLM struct {
	err error
}

func (s *scriptedLLM) Complete(_ context.Context, req service.CompletionRequest) (*service.Completion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &service.Completion{
		Content: "Generated for " + strconv.Itoa(len(req.Messages)) + " turn(s)",
		Usage:   document.Usage{InputTokens: 800, OutputTokens: 200},
	}, nil
}

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	llm    *scriptedLLM
	token  string
}

const ownerPassword = "owner-password"

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	events := service.NopPublisher()

	profiles := &memProfile{}
	experiences := newMemRepo[experience.Experience, experience.Filter, experience.Patch](func(e *experience.Experience, id string) { e.ID = id })
	skills := newMemRepo[skill.Skill, skill.Filter, skill.Patch](func(e *skill.Skill, id string) { e.ID = id })
	projects := newMemRepo[project.Project, project.Filter, project.Patch](func(e *project.Project, id string) { e.ID = id })
	educations := newMemRepo[education.Education, education.Filter, education.Patch](func(e *education.Education, id string) { e.ID = id })

	hash, err := auth.HashPassword(ownerPassword)
	s.Require().NoError(err)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	s.llm = &scriptedLLM{}
	aggregator := careercontext.NewAggregator(profiles, experiences, skills, projects, educations, log)

	s.router = NewRouter(Handlers{
		Auth:    NewAuthHandler(authUC.NewLoginUseCase(hash, jwtSvc, log)),
		Profile: NewProfileHandler(profileUC.NewProfileUseCase(profiles, events, log)),
		Experiences: NewRecordHandler(record.NewUseCase[experience.Experience, experience.Filter, experience.Patch](
			experiences, experience.EntityName, func(e *experience.Experience) string { return e.ID }, events, log)),
		Skills: NewRecordHandler(record.NewUseCase[skill.Skill, skill.Filter, skill.Patch](
			skills, skill.EntityName, func(e *skill.Skill) string { return e.ID }, events, log)),
		Projects: NewRecordHandler(record.NewUseCase[project.Project, project.Filter, project.Patch](
			projects, project.EntityName, func(e *project.Project) string { return e.ID }, events, log)),
		Educations: NewRecordHandler(record.NewUseCase[education.Education, education.Filter, education.Patch](
			educations, education.EntityName, func(e *education.Education) string { return e.ID }, events, log)),
		Generation: NewGenerationHandler(generation.NewUseCase(aggregator, s.llm, service.NopUsageLedger(), events, log)),
		Usage:      NewUsageHandler(usage.NewReportUseCase(service.NopUsageLedger())),
	}, jwtSvc, apperror.NewMapper(log))

	s.token, err = jwtSvc.GenerateToken()
	s.Require().NoError(err)
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *RouterTestSuite) errorOf(rr *httptest.ResponseRecorder) apperror.Response {
	var body struct {
		Error apperror.Response `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func (s *RouterTestSuite) Test_Health_IsPublic() {
	rr := s.do(http.MethodGet, "/api/health", nil, false)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *RouterTestSuite) Test_Login_Flow() {
	rrBad := s.do(http.MethodPost, "/api/admin/auth/login", gin.H{"password": "wrong"}, false)
	s.Equal(http.StatusUnauthorized, rrBad.Code)
	s.Equal(apperror.KindAuthentication, s.errorOf(rrBad).Kind)

	rrGood := s.do(http.MethodPost, "/api/admin/auth/login", gin.H{"password": ownerPassword}, false)
	s.Require().Equal(http.StatusOK, rrGood.Code)
	var login loginResponse
	s.Require().NoError(json.Unmarshal(rrGood.Body.Bytes(), &login))
	s.NotEmpty(login.AccessToken)

	rrMissing := s.do(http.MethodPost, "/api/admin/auth/login", gin.H{}, false)
	s.Equal(http.StatusBadRequest, rrMissing.Code)
}

func (s *RouterTestSuite) Test_Private_RequiresToken() {
	rr := s.do(http.MethodGet, "/api/admin/skills", nil, false)

	s.Equal(http.StatusUnauthorized, rr.Code)
	resp := s.errorOf(rr)
	s.Equal(apperror.KindAuthentication, resp.Kind)
	s.Equal(apperror.MsgAuthentication, resp.Message)
}

func (s *RouterTestSuite) Test_Record_Lifecycle() {
	rrCreate := s.do(http.MethodPost, "/api/admin/skills", gin.H{
		"name": "Go", "roleRelevance": "backend", "level": "expert", "rating": 9, "yearsOfExperience": 6,
	}, true)
	s.Require().Equal(http.StatusCreated, rrCreate.Code)
	var created skill.Skill
	s.Require().NoError(json.Unmarshal(rrCreate.Body.Bytes(), &created))
	s.NotEmpty(created.ID)

	rrList := s.do(http.MethodGet, "/api/admin/skills?name=go", nil, true)
	s.Require().Equal(http.StatusOK, rrList.Code)
	var listed []skill.Skill
	s.Require().NoError(json.Unmarshal(rrList.Body.Bytes(), &listed))
	s.Len(listed, 1)

	rrGet := s.do(http.MethodGet, "/api/admin/skills/"+created.ID, nil, true)
	s.Equal(http.StatusOK, rrGet.Code)

	rrDelete := s.do(http.MethodDelete, "/api/admin/skills/"+created.ID, nil, true)
	s.Require().Equal(http.StatusOK, rrDelete.Code)
	var first record.DeleteOutput
	s.Require().NoError(json.Unmarshal(rrDelete.Body.Bytes(), &first))
	s.Equal(record.DeleteOutput{Success: true, ID: created.ID}, first)

	rrAgain := s.do(http.MethodDelete, "/api/admin/skills/"+created.ID, nil, true)
	var second record.DeleteOutput
	s.Require().NoError(json.Unmarshal(rrAgain.Body.Bytes(), &second))
	s.False(second.Success)

	rrGone := s.do(http.MethodGet, "/api/admin/skills/"+created.ID, nil, true)
	s.Equal(http.StatusNotFound, rrGone.Code)
	resp := s.errorOf(rrGone)
	s.Equal(apperror.KindNotFound, resp.Kind)
	s.Equal("Skill", resp.Entity)
	s.Equal(created.ID, resp.ID)
}

func (s *RouterTestSuite) Test_Record_AcceptsMonthDates() {
	rr := s.do(http.MethodPost, "/api/admin/experiences", gin.H{
		"company": "Acme", "location": "Remote", "title": "Engineer",
		"startDate": "2021-03", "endDate": "2023-06-30",
	}, true)

	s.Require().Equal(http.StatusCreated, rr.Code)
	var created experience.Experience
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &created))
	s.Equal("Mar 2021", created.StartDate.MonthYear())
	s.Require().NotNil(created.EndDate)
	s.Equal("Jun 2023", created.EndDate.MonthYear())
}

func (s *RouterTestSuite) Test_Record_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/experiences", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+s.token)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal(apperror.KindValidation, s.errorOf(rr).Kind)
}

func (s *RouterTestSuite) Test_Profile_GetAndPut() {
	rrMissing := s.do(http.MethodGet, "/api/admin/profile", nil, true)
	s.Equal(http.StatusNotFound, rrMissing.Code)

	rrPut := s.do(http.MethodPut, "/api/admin/profile", gin.H{
		"personalInfo": gin.H{"name": "Khoa Tran", "email": "khoa@example.com"},
		"positioning":  gin.H{"headline": "Backend engineer", "summary": "s", "targetRoles": []string{"Staff"}, "targetIndustries": []string{"Fintech"}},
	}, true)
	s.Require().Equal(http.StatusOK, rrPut.Code)

	rrGet := s.do(http.MethodGet, "/api/admin/profile", nil, true)
	s.Require().Equal(http.StatusOK, rrGet.Code)
	var p profile.Profile
	s.Require().NoError(json.Unmarshal(rrGet.Body.Bytes(), &p))
	s.Equal("Khoa Tran", p.PersonalInfo.Name)
}

func (s *RouterTestSuite) Test_Generate_Resume() {
	rr := s.do(http.MethodPost, "/api/admin/generate/resume", gin.H{
		"jobInfo": gin.H{"description": "Senior Engineer role...", "jobType": "software_engineer"},
	}, true)

	s.Require().Equal(http.StatusOK, rr.Code)
	var result document.Result
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &result))
	s.Equal("Generated for 1 turn(s)", result.Content)
	s.Positive(result.Usage.InputTokens)
	s.Positive(result.Usage.OutputTokens)
}

func (s *RouterTestSuite) Test_Revise_CoverLetter() {
	rr := s.do(http.MethodPost, "/api/admin/revise/cover-letter", gin.H{
		"jobInfo":  gin.H{"description": "Senior Engineer role...", "jobType": "software_engineer"},
		"feedback": "Make it shorter",
	}, true)

	s.Require().Equal(http.StatusOK, rr.Code)
	var result document.Result
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &result))
	s.Equal("Generated for 3 turn(s)", result.Content)
}

func (s *RouterTestSuite) Test_Generate_ValidationNamesFields() {
	rr := s.do(http.MethodPost, "/api/admin/generate/application-answer", gin.H{"jobInfo": gin.H{}}, true)

	s.Equal(http.StatusBadRequest, rr.Code)
	resp := s.errorOf(rr)
	s.Equal(apperror.KindValidation, resp.Kind)
	s.Equal([]string{"description", "jobType", "question"}, resp.Fields)
}

func (s *RouterTestSuite) Test_Generate_UnknownKind() {
	rr := s.do(http.MethodPost, "/api/admin/generate/memo", gin.H{}, true)

	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal([]string{"kind"}, s.errorOf(rr).Fields)
}

func (s *RouterTestSuite) Test_Generate_ProviderFailureIsSanitized() {
	s.llm.err = errors.New(`POST "https://api.anthropic.com/v1/messages": 429 Too Many Requests: rate limit exceeded for org-secret`)

	rr := s.do(http.MethodPost, "/api/admin/generate/resume", gin.H{
		"jobInfo": gin.H{"description": "d", "jobType": "t"},
	}, true)

	s.Equal(http.StatusServiceUnavailable, rr.Code)
	resp := s.errorOf(rr)
	s.Equal(apperror.KindAIService, resp.Kind)
	s.Equal(apperror.MsgAIRateLimit, resp.Message)
	s.NotContains(rr.Body.String(), "org-secret")
}

func (s *RouterTestSuite) Test_Usage_Report() {
	rr := s.do(http.MethodGet, "/api/admin/usage", nil, true)

	s.Require().Equal(http.StatusOK, rr.Code)
	var out usage.ReportOutput
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &out))
	s.Len(out.Kinds, len(document.Kinds))
}
