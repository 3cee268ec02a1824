package models

import (
	"strings"
	"testing"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Name: "ayse", Email: "ayse@example.com", Password: "secret123"}, false},
		{"trims name", RegisterRequest{Name: "  ayse  ", Email: "ayse@example.com", Password: "secret123"}, false},
		{"empty name", RegisterRequest{Name: "   ", Email: "ayse@example.com", Password: "secret123"}, true},
		{"bad email", RegisterRequest{Name: "ayse", Email: "not-an-email", Password: "secret123"}, true},
		{"short password", RegisterRequest{Name: "ayse", Email: "ayse@example.com", Password: "12345"}, true},
		{"long name", RegisterRequest{Name: strings.Repeat("a", 101), Email: "a@b.co", Password: "secret123"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateChannelRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateChannelRequest
		wantErr bool
	}{
		{"valid text", CreateChannelRequest{Name: "duyurular", Type: "text"}, false},
		{"valid audio", CreateChannelRequest{Name: "sesli sohbet", Type: "audio"}, false},
		{"valid video", CreateChannelRequest{Name: "toplanti-odasi", Type: "video"}, false},
		{"reserved general", CreateChannelRequest{Name: "general", Type: "text"}, true},
		{"general with spaces", CreateChannelRequest{Name: "  general  ", Type: "text"}, true},
		{"bad type", CreateChannelRequest{Name: "duyurular", Type: "voice"}, true},
		{"empty name", CreateChannelRequest{Name: "", Type: "text"}, true},
		{"invalid chars", CreateChannelRequest{Name: "kanal/adi", Type: "text"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateChannelRequestRejectsGeneral(t *testing.T) {
	req := UpdateChannelRequest{Name: "general"}
	if err := req.Validate(); err == nil {
		t.Error("expected error when renaming to reserved name")
	}
}

func TestCreateMessageRequestValidate(t *testing.T) {
	fileURL := "https://cdn.example.com/file.png"
	tests := []struct {
		name    string
		req     CreateMessageRequest
		wantErr bool
	}{
		{"content only", CreateMessageRequest{Content: "merhaba"}, false},
		{"file only", CreateMessageRequest{FileURL: &fileURL}, false},
		{"content and file", CreateMessageRequest{Content: "bak", FileURL: &fileURL}, false},
		{"neither", CreateMessageRequest{}, true},
		{"whitespace only no file", CreateMessageRequest{Content: "   "}, true},
		{"too long", CreateMessageRequest{Content: strings.Repeat("a", 2001)}, true},
		{"at limit", CreateMessageRequest{Content: strings.Repeat("a", 2000)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemberRoleRank(t *testing.T) {
	if MemberRoleAdmin.Rank() >= MemberRoleModerator.Rank() {
		t.Error("admin should rank above moderator")
	}
	if MemberRoleModerator.Rank() >= MemberRoleGuest.Rank() {
		t.Error("moderator should rank above guest")
	}
}

func TestMemberRoleAtLeast(t *testing.T) {
	tests := []struct {
		role  MemberRole
		other MemberRole
		want  bool
	}{
		{MemberRoleAdmin, MemberRoleModerator, true},
		{MemberRoleModerator, MemberRoleModerator, true},
		{MemberRoleGuest, MemberRoleModerator, false},
		{MemberRoleModerator, MemberRoleAdmin, false},
	}

	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.other); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.role, tt.other, got, tt.want)
		}
	}
}

func TestUpdateMemberRoleRequestValidate(t *testing.T) {
	valid := UpdateMemberRoleRequest{Role: MemberRoleModerator}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	invalid := UpdateMemberRoleRequest{Role: "owner"}
	if err := invalid.Validate(); err == nil {
		t.Error("expected error for unknown role")
	}
}
