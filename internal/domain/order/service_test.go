package order

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"safetyportal/database"
	"safetyportal/extractors"
	"safetyportal/internal/domain/duplicates"
	"safetyportal/internal/domain/repositories"
	"safetyportal/internal/infrastructure/persistence"
)

type fakeDecoder struct {
	text string
	err  error
}

func (d fakeDecoder) ReadText(context.Context, []byte) (string, error) {
	return d.text, d.err
}

type mockExtractionRecorder struct {
	mock.Mock
}

func (m *mockExtractionRecorder) PDFExtraction(outcome string) {
	m.Called(outcome)
}

// OrderServiceTestSuite проверяет сервис заказов на in-memory SQLite
type OrderServiceTestSuite struct {
	suite.Suite
	db       *database.ServiceDB
	decoder  *fakeDecoder
	recorder *mockExtractionRecorder
	svc      *service
	ctx      context.Context
}

func (s *OrderServiceTestSuite) SetupTest() {
	db, err := database.NewServiceDB(":memory:")
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())

	s.db = db
	s.decoder = &fakeDecoder{}
	s.recorder = &mockExtractionRecorder{}
	s.ctx = context.Background()
	s.svc = NewService(
		persistence.NewOrderRepository(db),
		s.decoder,
		Config{Duplicates: duplicates.DefaultConfig(), MaxUploadBytes: 1024},
		nil,
		s.recorder,
		nil,
	).(*service)
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.db.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) validRequest() CreateRequest {
	return CreateRequest{
		Manufacturer: "ABC Steel",
		Product:      "W Beam Crash Barrier",
		Subtype:      "W-Beam",
		Quantity:     500,
		Rate:         1200,
		FromLocation: "Delhi",
		ToLocation:   "Mumbai",
		CreatedBy:    "alice",
	}
}

func (s *OrderServiceTestSuite) TestCreate_Defaults() {
	o, err := s.svc.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)

	s.Equal(repositories.OrderTypePurchase, o.OrderType)
	s.Equal(repositories.OrderStatusPending, o.Status)
	s.Equal("alice", o.CreatedBy)
	s.Nil(o.DispatchDate)
	s.Equal(600000.0, o.Amount())
}

func (s *OrderServiceTestSuite) TestCreate_Duplicate() {
	first, err := s.svc.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)

	again := s.validRequest()
	again.Manufacturer = "abc steel "
	again.ToLocation = "MUMBAI"
	_, err = s.svc.Create(s.ctx, again)

	var conflict *duplicates.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal(first.ID, conflict.ExistingID)

	// Другое количество - другой заказ
	other := s.validRequest()
	other.Quantity = 501
	_, err = s.svc.Create(s.ctx, other)
	s.NoError(err)
}

func (s *OrderServiceTestSuite) TestCreate_Validation() {
	tests := []struct {
		name   string
		modify func(*CreateRequest)
		want   error
	}{
		{"bad type", func(r *CreateRequest) { r.OrderType = "barter" }, ErrInvalidOrderType},
		{"bad status", func(r *CreateRequest) { r.Status = "lost" }, ErrInvalidStatus},
		{"zero quantity", func(r *CreateRequest) { r.Quantity = 0 }, ErrQuantityRequired},
		{"negative rate", func(r *CreateRequest) { r.Rate = -5 }, ErrNegativeValue},
		{"no details", func(r *CreateRequest) { r.Manufacturer, r.Product = "", " " }, ErrOrderDetailsRequired},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.validRequest()
			tt.modify(&req)
			_, err := s.svc.Create(s.ctx, req)
			s.ErrorIs(err, tt.want)
		})
	}
}

func (s *OrderServiceTestSuite) TestUpdate_StatusTransitions() {
	dispatchedAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	s.svc.now = func() time.Time { return dispatchedAt }

	o, err := s.svc.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)

	dispatched := repositories.OrderStatusDispatched
	updated, err := s.svc.Update(s.ctx, o.ID, UpdateRequest{Status: &dispatched})
	s.Require().NoError(err)
	s.Equal(dispatched, updated.Status)
	s.Require().NotNil(updated.DispatchDate)
	s.Equal(dispatchedAt, *updated.DispatchDate)

	pending := repositories.OrderStatusPending
	_, err = s.svc.Update(s.ctx, o.ID, UpdateRequest{Status: &pending})
	s.ErrorIs(err, ErrInvalidStatusTransition)

	delivered := repositories.OrderStatusDelivered
	_, err = s.svc.Update(s.ctx, o.ID, UpdateRequest{Status: &delivered})
	s.Require().NoError(err)

	cancelled := repositories.OrderStatusCancelled
	_, err = s.svc.Update(s.ctx, o.ID, UpdateRequest{Status: &cancelled})
	s.ErrorIs(err, ErrInvalidStatusTransition)

	_, err = s.svc.Update(s.ctx, 999, UpdateRequest{Status: &cancelled})
	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *OrderServiceTestSuite) TestList_FiltersByStatusAndType() {
	_, err := s.svc.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)

	sales := s.validRequest()
	sales.OrderType = "Sales"
	sales.Quantity = 20
	_, err = s.svc.Create(s.ctx, sales)
	s.Require().NoError(err)

	items, err := s.svc.List(s.ctx, ListFilter{OrderType: repositories.OrderTypeSales})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(20.0, items[0].Quantity)

	items, err = s.svc.List(s.ctx, ListFilter{Status: repositories.OrderStatusPending})
	s.Require().NoError(err)
	s.Len(items, 2)

	_, err = s.svc.List(s.ctx, ListFilter{Status: "unknown"})
	s.ErrorIs(err, ErrInvalidStatus)
}

func (s *OrderServiceTestSuite) TestExtractFromPDF() {
	pdf := []byte("%PDF-1.4 fake body")

	s.Run("labeled text", func() {
		s.decoder.text, s.decoder.err = "Manufacturer: ABC Steel\nQuantity: 500\nFrom: Delhi\nTo: Mumbai", nil
		s.recorder.On("PDFExtraction", OutcomeSuccess).Once()

		result, err := s.svc.ExtractFromPDF(s.ctx, pdf)
		s.Require().NoError(err)
		s.Equal(extractors.ExtractionResult{
			Success:      true,
			Manufacturer: "ABC Steel",
			Quantity:     "500",
			FromLocation: "Delhi",
			ToLocation:   "Mumbai",
		}, result)
	})

	s.Run("scanned document", func() {
		s.decoder.text, s.decoder.err = "  \n ", nil
		s.recorder.On("PDFExtraction", OutcomeNoText).Once()

		result, err := s.svc.ExtractFromPDF(s.ctx, pdf)
		s.Require().NoError(err)
		s.False(result.Success)
		s.Equal(extractors.ErrMessageNoText, result.Error)
	})

	s.Run("decoder failure", func() {
		s.decoder.text, s.decoder.err = "", errors.New("malformed xref table")
		s.recorder.On("PDFExtraction", OutcomeFailed).Once()

		result, err := s.svc.ExtractFromPDF(s.ctx, pdf)
		s.Require().NoError(err)
		s.False(result.Success)
		s.Contains(result.Error, "malformed xref table")
		s.Empty(result.Manufacturer)
	})

	s.Run("rejected uploads", func() {
		s.recorder.On("PDFExtraction", OutcomeRejected).Twice()

		_, err := s.svc.ExtractFromPDF(s.ctx, []byte("GIF89a"))
		s.ErrorIs(err, ErrInvalidDocument)

		_, err = s.svc.ExtractFromPDF(s.ctx, append([]byte("%PDF-"), make([]byte, 2048)...))
		s.ErrorIs(err, ErrDocumentTooLarge)
	})

	s.recorder.AssertExpectations(s.T())
}

func (s *OrderServiceTestSuite) TestExport() {
	_, err := s.svc.Create(s.ctx, s.validRequest())
	s.Require().NoError(err)

	var buf bytes.Buffer
	count, err := s.svc.Export(s.ctx, ListFilter{}, &buf)
	s.Require().NoError(err)
	s.Equal(1, count)

	f, err := excelize.OpenReader(&buf)
	s.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(exportHeaders, rows[0])
	s.Equal("ABC Steel", rows[1][2])
	s.Equal("600000", rows[1][7])
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition("pending", "dispatched"))
	assert.True(t, CanTransition("pending", "pending"))
	assert.True(t, CanTransition("dispatched", "cancelled"))
	assert.False(t, CanTransition("delivered", "pending"))
	assert.False(t, CanTransition("cancelled", "dispatched"))
	assert.False(t, CanTransition("unknown", "unknown"))
	require.False(t, CanTransition("pending", "delivered"))
}
