package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"njangitech_backend/internals/features/sessions/dto"
	"njangitech_backend/internals/features/sessions/service"
	helper "njangitech_backend/internals/helpers"
)

type SessionController struct {
	Svc *service.Service
}

func NewSessionController(svc *service.Service) *SessionController {
	return &SessionController{Svc: svc}
}

var sessionSort = map[string]string{
	"number": "session_number",
	"date":   "session_date",
}

// GET /sessions?tontine_id=&status=&page=&per_page=
func (ctl *SessionController) List(c *fiber.Ctx) error {
	tontineID, err := helper.ParseUUIDQuery(c, "tontine_id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.List(c.UserContext(), tontineID, strings.TrimSpace(c.Query("status")),
		p.Offset, p.Limit, helper.OrderBy(c, sessionSort, "number", "desc"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "sessions", rows, &pg)
}

// POST /sessions
func (ctl *SessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	s, err := ctl.Svc.CreateSession(c.UserContext(), req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "session scheduled", s)
}

// GET /sessions/:id
func (ctl *SessionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	s, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", s)
}

// GET /sessions/:id/attendance
func (ctl *SessionController) AttendanceSheet(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := ctl.Svc.AttendanceSheet(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// POST /sessions/:id/attendance
func (ctl *SessionController) RecordAttendance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.AttendanceRecord
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if err := ctl.Svc.RecordAttendance(c.UserContext(), id, req); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "attendance recorded", nil)
}

// POST /sessions/:id/save-meeting
func (ctl *SessionController) SaveMeeting(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.SaveMeetingRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if err := ctl.Svc.SaveMeeting(c.UserContext(), id, req.Records); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "meeting saved", fiber.Map{"records": len(req.Records)})
}

// POST /sessions/:id/close
func (ctl *SessionController) Close(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := ctl.Svc.CloseSession(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "session closed", res)
}

// POST /sessions/:id/cancel
func (ctl *SessionController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	s, err := ctl.Svc.CancelSession(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "session cancelled", s)
}
