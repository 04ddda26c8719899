package dto

import (
	"strings"

	"njangitech_backend/internals/features/members/model"
)

type CreateMemberRequest struct {
	MemberFullName string  `json:"member_full_name" validate:"required,min=2,max=150"`
	MemberEmail    *string `json:"member_email" validate:"omitempty,email,max=150"`
	MemberPhone    *string `json:"member_phone" validate:"omitempty,max=30"`
	MemberAddress  *string `json:"member_address" validate:"omitempty"`
}

func (r *CreateMemberRequest) Normalize() {
	r.MemberFullName = strings.TrimSpace(r.MemberFullName)
	r.MemberEmail = normEmail(r.MemberEmail)
	r.MemberPhone = trimPtr(r.MemberPhone)
	r.MemberAddress = trimPtr(r.MemberAddress)
}

func (r *CreateMemberRequest) ToModel() *model.MemberModel {
	return &model.MemberModel{
		MemberFullName: r.MemberFullName,
		MemberEmail:    r.MemberEmail,
		MemberPhone:    r.MemberPhone,
		MemberAddress:  r.MemberAddress,
		MemberStatus:   model.MemberStatusActive,
	}
}

type UpdateMemberRequest struct {
	MemberFullName *string `json:"member_full_name" validate:"omitempty,min=2,max=150"`
	MemberEmail    *string `json:"member_email" validate:"omitempty,email,max=150"`
	MemberPhone    *string `json:"member_phone" validate:"omitempty,max=30"`
	MemberAddress  *string `json:"member_address" validate:"omitempty"`
}

func (r *UpdateMemberRequest) Normalize() {
	r.MemberFullName = trimPtr(r.MemberFullName)
	r.MemberEmail = normEmail(r.MemberEmail)
	r.MemberPhone = trimPtr(r.MemberPhone)
	r.MemberAddress = trimPtr(r.MemberAddress)
}

// Apply copies the provided fields onto m.
func (r *UpdateMemberRequest) Apply(m *model.MemberModel) {
	if r.MemberFullName != nil {
		m.MemberFullName = *r.MemberFullName
	}
	if r.MemberEmail != nil {
		m.MemberEmail = r.MemberEmail
	}
	if r.MemberPhone != nil {
		m.MemberPhone = r.MemberPhone
	}
	if r.MemberAddress != nil {
		m.MemberAddress = r.MemberAddress
	}
}

type UpdateMemberStatusRequest struct {
	MemberStatus string `json:"member_status" validate:"required,oneof=active inactive suspended"`
}

type ListMembersQuery struct {
	Status string
	Search string
	Offset int
	Limit  int
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normEmail(s *string) *string {
	s = trimPtr(s)
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	return &v
}
