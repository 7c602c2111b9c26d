package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]models.Course
	// object keys handed back on course delete
	deleteKeys []string
}

func (f *fakeCourseRepo) NewCourse(_ context.Context, course *models.Course) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	course.CreatedAt = time.Now().UTC()
	course.UpdatedAt = course.CreatedAt
	f.courses[course.ID] = *course
	return course.ID, nil
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return &c, nil
}

func (f *fakeCourseRepo) UpdateCourse(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return app_errors.ErrCourseNotFound
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) ListCourses(_ context.Context) ([]models.Course, error) {
	var result []models.Course
	for _, c := range f.courses {
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeCourseRepo) DeleteCourse(_ context.Context, id uuid.UUID) ([]string, error) {
	if _, ok := f.courses[id]; !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	delete(f.courses, id)
	return f.deleteKeys, nil
}

type fakeLessonRepo struct {
	lessons  map[uuid.UUID]models.Lesson
	byCourse map[uuid.UUID][]uuid.UUID
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{
		lessons:  map[uuid.UUID]models.Lesson{},
		byCourse: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeLessonRepo) CreateLesson(_ context.Context, lesson models.Lesson) (*models.Lesson, error) {
	lesson.CreatedAt = time.Now().UTC()
	f.lessons[lesson.ID] = lesson
	f.byCourse[lesson.CourseID] = append(f.byCourse[lesson.CourseID], lesson.ID)
	return &lesson, nil
}

func (f *fakeLessonRepo) LessonByID(_ context.Context, id uuid.UUID) (*models.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, app_errors.ErrLessonNotFound
	}
	return &l, nil
}

func (f *fakeLessonRepo) LessonsByCourse(_ context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	var result []models.Lesson
	for _, id := range f.byCourse[courseID] {
		result = append(result, f.lessons[id])
	}
	return result, nil
}

func (f *fakeLessonRepo) DeleteLesson(_ context.Context, lessonID uuid.UUID) error {
	l, ok := f.lessons[lessonID]
	if !ok {
		return app_errors.ErrLessonNotFound
	}
	delete(f.lessons, lessonID)
	ids := f.byCourse[l.CourseID]
	for i, id := range ids {
		if id == lessonID {
			f.byCourse[l.CourseID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSearchRepo struct {
	indexed map[uuid.UUID]models.Course
	deleted []uuid.UUID
}

func (f *fakeSearchRepo) Index(_ context.Context, course models.Course) error {
	f.indexed[course.ID] = course
	return nil
}

func (f *fakeSearchRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeSearchRepo) Search(_ context.Context, query string, _ int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, c := range f.indexed {
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(query)) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeFileRepo struct {
	uploaded map[string][]byte
	deleted  []string
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{uploaded: map[string][]byte{}}
}

func (f *fakeFileRepo) UploadLessonFile(_ context.Context, courseID, lessonID uuid.UUID, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	key := fmt.Sprintf("courses/%s/lessons/%s", courseID, lessonID)
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploaded[key] = data
	return key, nil
}

func (f *fakeFileRepo) UploadThumbnail(_ context.Context, courseID uuid.UUID, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	key := fmt.Sprintf("courses/%s/thumbnail", courseID)
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploaded[key] = data
	return key, nil
}

func (f *fakeFileRepo) GetFileURL(_ context.Context, objectKey string) (string, error) {
	if _, ok := f.uploaded[objectKey]; !ok {
		return "", fmt.Errorf("object %s not found", objectKey)
	}
	return "https://files.example.com/" + objectKey, nil
}

func (f *fakeFileRepo) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	delete(f.uploaded, objectKey)
	return nil
}

type catalogFixture struct {
	svc     *CatalogService
	courses *fakeCourseRepo
	lessons *fakeLessonRepo
	search  *fakeSearchRepo
	files   *fakeFileRepo
}

func newCatalogFixture() *catalogFixture {
	courses := &fakeCourseRepo{courses: map[uuid.UUID]models.Course{}}
	lessons := newFakeLessonRepo()
	search := &fakeSearchRepo{indexed: map[uuid.UUID]models.Course{}}
	files := newFakeFileRepo()
	return &catalogFixture{
		svc:     NewCatalogService(logger.New("local"), courses, lessons, search, files),
		courses: courses,
		lessons: lessons,
		search:  search,
		files:   files,
	}
}

func TestCreateCourse(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.CreateCourse(context.Background(), "   ", "desc", "")
	assert.ErrorIs(t, err, app_errors.ErrEmptyTitle)

	course, err := f.svc.CreateCourse(context.Background(), "  Go Basics  ", "An intro", "")
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", course.Title)
	assert.NotEqual(t, uuid.Nil, course.ID)

	// the new course is searchable
	_, indexed := f.search.indexed[course.ID]
	assert.True(t, indexed)
}

func TestUpdateCourse(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "An intro", "")
	require.NoError(t, err)

	_, err = f.svc.UpdateCourse(context.Background(), uuid.New(), models.CourseUpdate{})
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)

	empty := "  "
	_, err = f.svc.UpdateCourse(context.Background(), course.ID, models.CourseUpdate{Title: &empty})
	assert.ErrorIs(t, err, app_errors.ErrEmptyTitle)

	newTitle := "Go Basics, 2nd ed."
	updated, err := f.svc.UpdateCourse(context.Background(), course.ID, models.CourseUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, "An intro", updated.Description)
}

func TestAddLesson_Validation(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)

	text := "Welcome"

	_, err = f.svc.AddLesson(context.Background(), uuid.New(), LessonInput{
		Title: "Intro", Kind: models.ContentKindText, Text: &text,
	})
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)

	_, err = f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title: "", Kind: models.ContentKindText, Text: &text,
	})
	assert.ErrorIs(t, err, app_errors.ErrEmptyTitle)

	_, err = f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title: "Intro", Kind: models.ContentKindText,
	})
	assert.ErrorIs(t, err, app_errors.ErrMissingText)

	// video with no file is rejected before anything is uploaded
	_, err = f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title: "Intro", Kind: models.ContentKindVideo,
	})
	assert.ErrorIs(t, err, app_errors.ErrMissingFile)
	assert.Empty(t, f.files.uploaded)

	_, err = f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title: "Intro", Kind: "quiz", Text: &text,
	})
	assert.ErrorIs(t, err, app_errors.ErrUnknownContentKind)
}

func TestAddLesson_Text(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)

	text := "Welcome"
	lesson, err := f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title: "Intro", Kind: models.ContentKindText, Text: &text,
	})
	require.NoError(t, err)
	assert.Nil(t, lesson.FileObjectKey)
	require.NotNil(t, lesson.Text)
	assert.Equal(t, "Welcome", *lesson.Text)

	lessons, err := f.svc.ListLessons(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Intro", lessons[0].Title)
	assert.Nil(t, lessons[0].FileObjectKey)
}

func TestAddLesson_VideoUploadsFile(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)

	lesson, err := f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title:       "Welcome video",
		Kind:        models.ContentKindVideo,
		Filename:    "welcome.mp4",
		File:        strings.NewReader("video-bytes"),
		FileSize:    11,
		ContentType: "video/mp4",
	})
	require.NoError(t, err)
	require.NotNil(t, lesson.FileObjectKey)
	assert.Nil(t, lesson.Text)
	assert.Contains(t, f.files.uploaded, *lesson.FileObjectKey)

	url, err := f.svc.LessonFileURL(context.Background(), lesson.ID)
	require.NoError(t, err)
	assert.Contains(t, url, *lesson.FileObjectKey)
}

func TestListLessons_EmptyAndOrdered(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)

	lessons, err := f.svc.ListLessons(context.Background(), course.ID)
	require.NoError(t, err)
	assert.NotNil(t, lessons)
	assert.Empty(t, lessons)

	for _, title := range []string{"One", "Two", "Three"} {
		text := "notes"
		_, err := f.svc.AddLesson(context.Background(), course.ID, LessonInput{
			Title: title, Kind: models.ContentKindText, Text: &text,
		})
		require.NoError(t, err)
	}

	lessons, err = f.svc.ListLessons(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, "One", lessons[0].Title)
	assert.Equal(t, "Two", lessons[1].Title)
	assert.Equal(t, "Three", lessons[2].Title)
}

func TestDeleteLesson_RemovesFile(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)

	lesson, err := f.svc.AddLesson(context.Background(), course.ID, LessonInput{
		Title:    "Welcome video",
		Kind:     models.ContentKindVideo,
		Filename: "welcome.mp4",
		File:     strings.NewReader("video-bytes"),
		FileSize: 11,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteLesson(context.Background(), lesson.ID))
	assert.Contains(t, f.files.deleted, *lesson.FileObjectKey)

	err = f.svc.DeleteLesson(context.Background(), lesson.ID)
	assert.ErrorIs(t, err, app_errors.ErrLessonNotFound)
}

func TestDeleteCourse(t *testing.T) {
	f := newCatalogFixture()

	err := f.svc.DeleteCourse(context.Background(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)

	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)
	f.courses.deleteKeys = []string{"courses/x/lessons/a.mp4", "courses/x/lessons/b.pdf"}

	require.NoError(t, f.svc.DeleteCourse(context.Background(), course.ID))

	assert.Contains(t, f.search.deleted, course.ID)
	assert.ElementsMatch(t, f.courses.deleteKeys, f.files.deleted)
}

func TestUploadThumbnail(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.UploadThumbnail(context.Background(), uuid.New(), "cover.png", strings.NewReader("png"), 3, "image/png")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)

	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)

	updated, err := f.svc.UploadThumbnail(context.Background(), course.ID, "cover.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.NotEmpty(t, updated.ThumbnailObjectKey)
	assert.Contains(t, f.files.uploaded, updated.ThumbnailObjectKey)
}

func TestSearchCourses(t *testing.T) {
	f := newCatalogFixture()
	course, err := f.svc.CreateCourse(context.Background(), "Go Basics", "", "")
	require.NoError(t, err)
	_, err = f.svc.CreateCourse(context.Background(), "Rust Basics", "", "")
	require.NoError(t, err)

	found, err := f.svc.SearchCourses(context.Background(), "go", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, course.ID, found[0].ID)
}
