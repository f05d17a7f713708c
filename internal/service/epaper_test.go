package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/domain"
)

type fakeEPapers struct {
	epapers map[domain.EPaperID]domain.EPaper
}

func newFakeEPapers() *fakeEPapers { return &fakeEPapers{epapers: make(map[domain.EPaperID]domain.EPaper)} }

func (f *fakeEPapers) CreateEPaper(_ context.Context, e domain.EPaper) (domain.EPaper, error) {
	e.ID = uuid.New()
	f.epapers[e.ID] = e
	return e, nil
}

func (f *fakeEPapers) EPaperByID(_ context.Context, id domain.EPaperID) (domain.EPaper, error) {
	e, ok := f.epapers[id]
	if !ok {
		return domain.EPaper{}, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEPapers) EPapersList(_ context.Context, _ domain.ListFilter) ([]domain.EPaper, int, error) {
	out := make([]domain.EPaper, 0, len(f.epapers))
	for _, e := range f.epapers {
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEPapers) EPaperByDateCity(_ context.Context, date time.Time, city string) (domain.EPaper, error) {
	for _, e := range f.epapers {
		if e.PublicationDate.Equal(date) && e.City == city {
			return e, nil
		}
	}
	return domain.EPaper{}, domain.ErrNotFound
}

func (f *fakeEPapers) UpdateEPaper(_ context.Context, id domain.EPaperID, p domain.EPaperPatch) (domain.EPaper, error) {
	e, ok := f.epapers[id]
	if !ok {
		return domain.EPaper{}, domain.ErrNotFound
	}
	if p.Pages != nil {
		e.Pages = *p.Pages
	}
	f.epapers[id] = e
	return e, nil
}

func (f *fakeEPapers) DeleteEPaper(_ context.Context, id domain.EPaperID) error {
	if _, ok := f.epapers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.epapers, id)
	return nil
}

func newEPaperSvc() *EPaperService {
	return NewEPaperService(log.New(io.Discard, "", 0), newFakeEPapers(), newMemCache())
}

func validEPaper() CreateEPaperInput {
	return CreateEPaperInput{
		PublicationName: "Morning Post",
		PublicationDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		City:            "Mumbai",
		Pages: []domain.EPaperPage{
			{PageNumber: 2, FileURL: "https://cdn.example.com/p2.pdf"},
			{PageNumber: 1, FileURL: "https://cdn.example.com/p1.pdf"},
		},
	}
}

func TestCreateEPaperSortsPages(t *testing.T) {
	t.Parallel()
	svc := newEPaperSvc()

	e, err := svc.Create(context.Background(), validEPaper())
	require.NoError(t, err)
	require.Len(t, e.Pages, 2)
	assert.Equal(t, 1, e.Pages[0].PageNumber)
	assert.Equal(t, 2, e.Pages[1].PageNumber)
}

func TestCreateEPaperPageValidation(t *testing.T) {
	t.Parallel()
	svc := newEPaperSvc()

	in := validEPaper()
	in.Pages = nil
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrBadParams)

	in = validEPaper()
	in.Pages = []domain.EPaperPage{{PageNumber: 0, FileURL: "x"}}
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrBadParams)

	in = validEPaper()
	in.Pages = []domain.EPaperPage{
		{PageNumber: 1, FileURL: "x"},
		{PageNumber: 1, FileURL: "y"},
	}
	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrBadParams)
	assert.Contains(t, err.Error(), "duplicate page number")
}

func TestCreateEPaperDuplicateDateCity(t *testing.T) {
	t.Parallel()
	svc := newEPaperSvc()

	_, err := svc.Create(context.Background(), validEPaper())
	require.NoError(t, err)

	// тот же день, тот же город — второй выпуск не пройдёт
	in := validEPaper()
	in.PublicationName = "Another Post"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	in = validEPaper()
	in.City = "Pune"
	_, err = svc.Create(context.Background(), in)
	assert.NoError(t, err)
}
