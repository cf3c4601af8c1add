package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCourses godoc
// @ID          listCourses
// @Summary     List courses
// @Tags        Courses
// @Produce     json
// @Success     200  {array}   domain.Course
// @Router      /courses [get]
func (h *Handlers) ListCourses(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		failFrom(c, err)
		return
	}
	ok(c, http.StatusOK, courses)
}

// GetCourse godoc
// @ID          getCourse
// @Summary     Get a course
// @Tags        Courses
// @Produce     json
// @Param       id  path  string  true  "Course ID"  example(abc-123)
// @Success     200  {object}  domain.Course
// @Failure     404  {object}  handlers.ErrorBody  "Course not found"
// @Router      /courses/{id} [get]
func (h *Handlers) GetCourse(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFrom(c, err)
		return
	}
	ok(c, http.StatusOK, course)
}
