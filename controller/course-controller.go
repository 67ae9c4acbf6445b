package controller

import (
	"fairway/app_error"
	"fairway/repository"
	"fairway/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	courseService *service.CourseService
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{
		courseService: service.NewCourseService(db),
	}
}

func setupCourseController(db *gorm.DB) []RouteInfo {
	e := NewCourseController(db)
	return []RouteInfo{
		{Method: "GET", Path: "courses/:course_id", HandlerFunc: e.getCourseHandler()},
		{Method: "PUT", Path: "courses", HandlerFunc: e.saveCourseHandler()},
		{Method: "GET", Path: "tees/:tee_id", HandlerFunc: e.getTeeHandler()},
	}
}

func (e *CourseController) getCourseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		courseId, err := strconv.Atoi(c.Param("course_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		course, err := e.courseService.GetCourseById(courseId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Course not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, course)
	}
}

func (e *CourseController) saveCourseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var course repository.Course
		if err := c.BindJSON(&course); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		saved, err := e.courseService.SaveCourse(&course)
		if err != nil {
			app_error.WithHTTPStatus(c, err, app_error.HTTPStatus(err, 500))
			return
		}
		c.JSON(200, saved)
	}
}

func (e *CourseController) getTeeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teeId, err := strconv.Atoi(c.Param("tee_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tee, err := e.courseService.GetTeeById(teeId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Tee not found"})
			} else {
				c.JSON(500, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(200, tee)
	}
}
