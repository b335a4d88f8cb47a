// file: internals/features/college/academics/route/academics_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "moulya_backend/internals/features/college/academics/controller"
)

// ManagementAcademicsRoutes: CRUD master data + enrollment/penugasan.
func ManagementAcademicsRoutes(api fiber.Router, db *gorm.DB) {
	courseCtrl := academicsController.NewCourseController(db)
	subjectCtrl := academicsController.NewSubjectController(db)
	lecturerCtrl := academicsController.NewLecturerController(db)
	studentCtrl := academicsController.NewStudentController(db)
	enrollCtrl := academicsController.NewEnrollmentController(db)

	courses := api.Group("/courses")
	courses.Post("/", courseCtrl.CreateCourse)
	courses.Get("/", courseCtrl.ListCourses)
	courses.Get("/:id", courseCtrl.GetCourse)
	courses.Patch("/:id", courseCtrl.UpdateCourse)

	subjects := api.Group("/subjects")
	subjects.Post("/", subjectCtrl.CreateSubject)
	subjects.Get("/", subjectCtrl.ListSubjects)
	subjects.Get("/:id", subjectCtrl.GetSubject)
	subjects.Patch("/:id", subjectCtrl.UpdateSubject)

	lecturers := api.Group("/lecturers")
	lecturers.Post("/", lecturerCtrl.CreateLecturer)
	lecturers.Get("/", lecturerCtrl.ListLecturers)
	lecturers.Get("/:id", lecturerCtrl.GetLecturer)
	lecturers.Patch("/:id", lecturerCtrl.UpdateLecturer)
	lecturers.Delete("/:id", lecturerCtrl.DeleteLecturer)

	students := api.Group("/students")
	students.Post("/", studentCtrl.CreateStudent)
	students.Get("/", studentCtrl.ListStudents)
	students.Patch("/:id", studentCtrl.UpdateStudent)
	students.Delete("/:id", studentCtrl.DeleteStudent)

	enrollments := api.Group("/enrollments")
	enrollments.Post("/", enrollCtrl.EnrollStudents)
	enrollments.Delete("/", enrollCtrl.UnenrollStudents)
	enrollments.Get("/:subject_id", enrollCtrl.ListEnrolled)

	assignments := api.Group("/assignments")
	assignments.Post("/", enrollCtrl.AssignLecturer)
	assignments.Delete("/", enrollCtrl.UnassignLecturer)
}

// LecturerAcademicsRoutes: portal baca untuk lecturer yang login.
func LecturerAcademicsRoutes(api fiber.Router, db *gorm.DB) {
	portalCtrl := academicsController.NewLecturerPortalController(db)

	subjects := api.Group("/subjects")
	subjects.Get("/", portalCtrl.MySubjects)
	subjects.Get("/:subject_id/students", portalCtrl.SubjectStudents)
}
