package routes

const (
	// Health
	Health = "/health"

	// Worker endpoints
	WorkersBase      = "/api/v1/workers"
	WorkersByID      = "/api/v1/workers/{id}"
	WorkersAvailable = "/api/v1/workers/available"
	WorkerAttendance = "/api/v1/workers/{id}/attendance"

	// Project endpoints
	ProjectsBase = "/api/v1/projects"
	ProjectsByID = "/api/v1/projects/{id}"

	// Task endpoints
	TasksBase   = "/api/v1/tasks"
	TasksByID   = "/api/v1/tasks/{id}"
	TasksCancel = "/api/v1/tasks/{id}/cancel"

	// Attendance endpoints
	AttendanceBase = "/api/v1/attendance"
)
