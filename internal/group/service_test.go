package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// fakeStore is an in-memory implementation of GroupStore and
// MembershipStore for service tests.
type fakeStore struct {
	groups           map[int64]*Group
	memberships      map[int64]*GroupMember
	nextGroupID      int64
	nextMembershipID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:      make(map[int64]*Group),
		memberships: make(map[int64]*GroupMember),
	}
}

func (s *fakeStore) CreateWithOwner(ctx context.Context, g *Group, owner *GroupMember) error {
	s.nextGroupID++
	g.ID = s.nextGroupID
	s.groups[g.ID] = g

	owner.GroupID = g.ID
	s.nextMembershipID++
	owner.ID = s.nextMembershipID
	s.memberships[owner.ID] = owner
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*Group, error) {
	return s.groups[id], nil
}

func (s *fakeStore) GetByInviteCode(ctx context.Context, code domain.InviteCode) (*Group, error) {
	for _, g := range s.groups {
		if g.InviteCode != nil && *g.InviteCode == code {
			return g, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Update(ctx context.Context, g *Group) error {
	if _, ok := s.groups[g.ID]; !ok {
		return ErrGroupNotFound
	}
	if g.InviteCode != nil {
		for id, other := range s.groups {
			if id != g.ID && other.InviteCode != nil && *other.InviteCode == *g.InviteCode {
				return ErrInviteCodeTaken
			}
		}
	}
	s.groups[g.ID] = g
	return nil
}

func (s *fakeStore) DeleteWithMemberships(ctx context.Context, groupID int64) error {
	delete(s.groups, groupID)
	for id, m := range s.memberships {
		if m.GroupID == groupID {
			delete(s.memberships, id)
		}
	}
	return nil
}

func (s *fakeStore) Create(ctx context.Context, m *GroupMember) (*GroupMember, error) {
	for _, existing := range s.memberships {
		if existing.GroupID == m.GroupID && existing.MemberID == m.MemberID {
			return nil, ErrAlreadyGroupMember
		}
	}
	s.nextMembershipID++
	m.ID = s.nextMembershipID
	s.memberships[m.ID] = m
	return m, nil
}

func (s *fakeStore) GetByGroupAndMember(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	for _, m := range s.memberships {
		if m.GroupID == groupID && m.MemberID == memberID {
			return m, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListByGroup(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	var out []*GroupMember
	for _, m := range s.memberships {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) ListByMember(ctx context.Context, memberID int64) ([]*GroupMember, error) {
	var out []*GroupMember
	for _, m := range s.memberships {
		if m.MemberID == memberID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	count := 0
	for _, m := range s.memberships {
		if m.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CountByMember(ctx context.Context, memberID int64) (int, error) {
	count := 0
	for _, m := range s.memberships {
		if m.MemberID == memberID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) Delete(ctx context.Context, id domain.GroupMemberID) error {
	delete(s.memberships, id.Int64())
	return nil
}

// fakeMemberships adapts fakeStore to MembershipStore. The wrapper exists
// because the membership Update signature differs from the group one.
type fakeMemberships struct {
	*fakeStore
}

func (s fakeMemberships) Update(ctx context.Context, m *GroupMember) error {
	s.memberships[m.ID] = m
	return nil
}

// fakeCodeGenerator hands out a fixed sequence of invite codes.
type fakeCodeGenerator struct {
	codes []string
}

func (g *fakeCodeGenerator) Generate() (domain.InviteCode, error) {
	if len(g.codes) == 0 {
		return "", errors.New("fakeCodeGenerator: out of codes")
	}
	code := g.codes[0]
	g.codes = g.codes[1:]
	return domain.NewInviteCode(code)
}

func newTestService(codes ...string) (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, fakeMemberships{store}, &fakeCodeGenerator{codes: codes}), store
}

func createTestGroup(t *testing.T, svc *Service, ownerID int64) *GroupSummary {
	t.Helper()
	summary, err := svc.Create(context.Background(), ownerID, &CreateGroupRequest{
		Name: "weekend plans",
		Type: "FRIEND",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return summary
}

func joinTestGroup(t *testing.T, store *fakeStore, groupID, memberID int64) *GroupMember {
	t.Helper()
	m, err := store.Create(context.Background(), NewMember(groupID, memberID))
	if err != nil {
		t.Fatalf("seeding membership returned error: %v", err)
	}
	return m
}

func TestCreate(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)

	if summary.MemberCount != 1 {
		t.Errorf("MemberCount = %d, want 1", summary.MemberCount)
	}
	owner, _ := store.GetByGroupAndMember(context.Background(), summary.Group.ID, 1)
	if owner == nil {
		t.Fatal("creator should have a membership")
	}
	if owner.Role != RoleOwner {
		t.Errorf("creator role = %v, want %v", owner.Role, RoleOwner)
	}
}

func TestCreateAtGroupLimit(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < MaxGroupsPerMember; i++ {
		createTestGroup(t, svc, 1)
	}

	_, err := svc.Create(context.Background(), 1, &CreateGroupRequest{Name: "one too many", Type: "CUSTOM"})
	if !errors.Is(err, ErrMaxGroupLimitExceeded) {
		t.Errorf("Create at limit error = %v, want %v", err, ErrMaxGroupLimitExceeded)
	}
}

func TestCreateInvalidType(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, &CreateGroupRequest{Name: "bad", Type: "WORK"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Create with unknown type error = %v, want validation error", err)
	}
}

func TestGetRequiresMembership(t *testing.T) {
	svc, _ := newTestService()
	summary := createTestGroup(t, svc, 1)

	if _, err := svc.Get(context.Background(), 1, summary.Group.ID); err != nil {
		t.Errorf("Get as member returned error: %v", err)
	}

	_, err := svc.Get(context.Background(), 2, summary.Group.ID)
	if !errors.Is(err, ErrGroupMemberNotFound) {
		t.Errorf("Get as non-member error = %v, want %v", err, ErrGroupMemberNotFound)
	}

	// A group that does not exist yields the same error as one the
	// caller simply is not in.
	_, err = svc.Get(context.Background(), 1, 999)
	if !errors.Is(err, ErrGroupMemberNotFound) {
		t.Errorf("Get on missing group error = %v, want %v", err, ErrGroupMemberNotFound)
	}
}

func TestListMine(t *testing.T) {
	svc, store := newTestService()
	g1 := createTestGroup(t, svc, 1)
	g2 := createTestGroup(t, svc, 2)
	joinTestGroup(t, store, g2.Group.ID, 1)

	summaries, err := svc.ListMine(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}
	counts := map[int64]int{}
	for _, s := range summaries {
		counts[s.Group.ID] = s.MemberCount
	}
	if counts[g1.Group.ID] != 1 {
		t.Errorf("member count of own group = %d, want 1", counts[g1.Group.ID])
	}
	if counts[g2.Group.ID] != 2 {
		t.Errorf("member count of joined group = %d, want 2", counts[g2.Group.ID])
	}
}

func TestUpdatePermissions(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	groupID := summary.Group.ID
	admin := joinTestGroup(t, store, groupID, 2)
	admin.ChangeRole(RoleAdmin)
	joinTestGroup(t, store, groupID, 3)

	newName := "renamed"

	if _, err := svc.Update(context.Background(), 2, groupID, &UpdateGroupRequest{Name: &newName}); err != nil {
		t.Errorf("Update as admin returned error: %v", err)
	}

	_, err := svc.Update(context.Background(), 3, groupID, &UpdateGroupRequest{Name: &newName})
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("Update as plain member error = %v, want %v", err, ErrInsufficientPermission)
	}
}

func TestDeleteOwnerOnly(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	groupID := summary.Group.ID
	admin := joinTestGroup(t, store, groupID, 2)
	admin.ChangeRole(RoleAdmin)

	err := svc.Delete(context.Background(), 2, groupID)
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("Delete as admin error = %v, want %v", err, ErrInsufficientPermission)
	}

	if err := svc.Delete(context.Background(), 1, groupID); err != nil {
		t.Fatalf("Delete as owner returned error: %v", err)
	}
	if g, _ := store.GetByID(context.Background(), groupID); g != nil {
		t.Error("group should be gone after delete")
	}
	if count, _ := store.CountByGroup(context.Background(), groupID); count != 0 {
		t.Errorf("memberships remaining after delete = %d, want 0", count)
	}
}

func TestGenerateInviteCode(t *testing.T) {
	svc, store := newTestService("AB12CD")
	summary := createTestGroup(t, svc, 1)

	resp, err := svc.GenerateInviteCode(context.Background(), 1, summary.Group.ID)
	if err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}
	if resp.InviteCode != "AB12CD" {
		t.Errorf("InviteCode = %q, want %q", resp.InviteCode, "AB12CD")
	}

	g, _ := store.GetByID(context.Background(), summary.Group.ID)
	if g.InviteCodeExpiresAt == nil {
		t.Fatal("expiry should be set")
	}
	wantExpiry := time.Now().Add(InviteCodeTTL)
	if diff := g.InviteCodeExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry = %v, want about %v", g.InviteCodeExpiresAt, wantExpiry)
	}

	// The response expiry is the stored instant rendered in UTC, so the
	// trailing Z is truthful regardless of server timezone.
	parsed, err := time.Parse(time.RFC3339, resp.ExpiresAt)
	if err != nil {
		t.Fatalf("ExpiresAt %q is not RFC3339: %v", resp.ExpiresAt, err)
	}
	if !parsed.Equal(g.InviteCodeExpiresAt.Truncate(time.Second)) {
		t.Errorf("ExpiresAt = %v, want %v", parsed, g.InviteCodeExpiresAt.Truncate(time.Second))
	}
}

func TestGenerateInviteCodeRequiresManage(t *testing.T) {
	svc, store := newTestService("AB12CD")
	summary := createTestGroup(t, svc, 1)
	joinTestGroup(t, store, summary.Group.ID, 2)

	_, err := svc.GenerateInviteCode(context.Background(), 2, summary.Group.ID)
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("GenerateInviteCode as plain member error = %v, want %v", err, ErrInsufficientPermission)
	}
}

func TestGenerateInviteCodeRetriesOnCollision(t *testing.T) {
	svc, _ := newTestService("AB12CD", "AB12CD", "EF34GH")
	other := createTestGroup(t, svc, 1)
	if _, err := svc.GenerateInviteCode(context.Background(), 1, other.Group.ID); err != nil {
		t.Fatalf("seeding colliding code returned error: %v", err)
	}

	summary := createTestGroup(t, svc, 2)
	resp, err := svc.GenerateInviteCode(context.Background(), 2, summary.Group.ID)
	if err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}
	if resp.InviteCode != "EF34GH" {
		t.Errorf("InviteCode = %q, want the regenerated %q", resp.InviteCode, "EF34GH")
	}
}

func TestGenerateInviteCodeExhaustsRetries(t *testing.T) {
	svc, _ := newTestService("AB12CD", "AB12CD", "AB12CD", "AB12CD")
	other := createTestGroup(t, svc, 1)
	if _, err := svc.GenerateInviteCode(context.Background(), 1, other.Group.ID); err != nil {
		t.Fatalf("seeding colliding code returned error: %v", err)
	}

	summary := createTestGroup(t, svc, 2)
	_, err := svc.GenerateInviteCode(context.Background(), 2, summary.Group.ID)
	if !errors.Is(err, ErrInviteCodeTaken) {
		t.Errorf("GenerateInviteCode with persistent collisions error = %v, want %v", err, ErrInviteCodeTaken)
	}
}

func TestJoin(t *testing.T) {
	svc, store := newTestService("AB12CD")
	summary := createTestGroup(t, svc, 1)
	if _, err := svc.GenerateInviteCode(context.Background(), 1, summary.Group.ID); err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}

	m, err := svc.Join(context.Background(), 2, &JoinGroupRequest{InviteCode: "AB12CD"})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if m.Role != RoleMember {
		t.Errorf("joined role = %v, want %v", m.Role, RoleMember)
	}
	if count, _ := store.CountByGroup(context.Background(), summary.Group.ID); count != 2 {
		t.Errorf("member count after join = %d, want 2", count)
	}
}

func TestJoinMalformedCode(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Join(context.Background(), 1, &JoinGroupRequest{InviteCode: "ab12cd"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Join with lowercase code error = %v, want validation error", err)
	}
}

func TestJoinUnknownCode(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Join(context.Background(), 1, &JoinGroupRequest{InviteCode: "ZZZZZZ"})
	if !errors.Is(err, ErrInvalidInviteCode) {
		t.Errorf("Join with unknown code error = %v, want %v", err, ErrInvalidInviteCode)
	}
}

func TestJoinExpiredCode(t *testing.T) {
	svc, store := newTestService("AB12CD")
	summary := createTestGroup(t, svc, 1)
	if _, err := svc.GenerateInviteCode(context.Background(), 1, summary.Group.ID); err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}
	g, _ := store.GetByID(context.Background(), summary.Group.ID)
	past := time.Now().Add(-time.Minute)
	g.InviteCodeExpiresAt = &past

	_, err := svc.Join(context.Background(), 2, &JoinGroupRequest{InviteCode: "AB12CD"})
	if !errors.Is(err, ErrInvalidInviteCode) {
		t.Errorf("Join with expired code error = %v, want %v", err, ErrInvalidInviteCode)
	}
}

func TestJoinAlreadyMember(t *testing.T) {
	svc, _ := newTestService("AB12CD")
	summary := createTestGroup(t, svc, 1)
	if _, err := svc.GenerateInviteCode(context.Background(), 1, summary.Group.ID); err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}

	_, err := svc.Join(context.Background(), 1, &JoinGroupRequest{InviteCode: "AB12CD"})
	if !errors.Is(err, ErrAlreadyGroupMember) {
		t.Errorf("Join own group error = %v, want %v", err, ErrAlreadyGroupMember)
	}
}

func TestJoinFullGroup(t *testing.T) {
	svc, store := newTestService("AB12CD")
	summary := createTestGroup(t, svc, 1)
	if _, err := svc.GenerateInviteCode(context.Background(), 1, summary.Group.ID); err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}
	g, _ := store.GetByID(context.Background(), summary.Group.ID)
	g.MaxMembers = 2
	joinTestGroup(t, store, g.ID, 2)

	_, err := svc.Join(context.Background(), 3, &JoinGroupRequest{InviteCode: "AB12CD"})
	if !errors.Is(err, ErrMaxMemberLimitExceeded) {
		t.Errorf("Join full group error = %v, want %v", err, ErrMaxMemberLimitExceeded)
	}
}

func TestJoinGroupLimitBeforeCodeLookup(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < MaxGroupsPerMember; i++ {
		createTestGroup(t, svc, 1)
	}

	// Well-formed but unknown code: the caller's own limit wins over
	// the code lookup.
	_, err := svc.Join(context.Background(), 1, &JoinGroupRequest{InviteCode: "ZZZZZZ"})
	if !errors.Is(err, ErrMaxGroupLimitExceeded) {
		t.Errorf("Join at group limit error = %v, want %v", err, ErrMaxGroupLimitExceeded)
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	joinTestGroup(t, store, summary.Group.ID, 2)

	members, err := svc.ListMembers(context.Background(), 1, summary.Group.ID)
	if err != nil {
		t.Fatalf("ListMembers returned error: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("len(members) = %d, want 2", len(members))
	}

	_, err = svc.ListMembers(context.Background(), 3, summary.Group.ID)
	if !errors.Is(err, ErrGroupMemberNotFound) {
		t.Errorf("ListMembers as non-member error = %v, want %v", err, ErrGroupMemberNotFound)
	}
}

func TestUpdateMemberRole(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	groupID := summary.Group.ID
	joinTestGroup(t, store, groupID, 2)

	admin := "ADMIN"
	updated, err := svc.UpdateMember(context.Background(), 1, groupID, 2, &UpdateGroupMemberRequest{Role: &admin})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}
	if updated.Role != RoleAdmin {
		t.Errorf("role after promotion = %v, want %v", updated.Role, RoleAdmin)
	}

	member := "MEMBER"
	updated, err = svc.UpdateMember(context.Background(), 1, groupID, 2, &UpdateGroupMemberRequest{Role: &member})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}
	if updated.Role != RoleMember {
		t.Errorf("role after demotion = %v, want %v", updated.Role, RoleMember)
	}
}

func TestUpdateMemberOwnerProtections(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	groupID := summary.Group.ID
	joinTestGroup(t, store, groupID, 2)

	member := "MEMBER"
	_, err := svc.UpdateMember(context.Background(), 1, groupID, 1, &UpdateGroupMemberRequest{Role: &member})
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("demoting the owner error = %v, want %v", err, ErrInsufficientPermission)
	}

	owner := "OWNER"
	_, err = svc.UpdateMember(context.Background(), 1, groupID, 2, &UpdateGroupMemberRequest{Role: &owner})
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("assigning OWNER error = %v, want %v", err, ErrInsufficientPermission)
	}
}

func TestUpdateMemberCallerMustBeOwner(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	groupID := summary.Group.ID
	admin := joinTestGroup(t, store, groupID, 2)
	admin.ChangeRole(RoleAdmin)
	joinTestGroup(t, store, groupID, 3)

	role := "ADMIN"
	_, err := svc.UpdateMember(context.Background(), 2, groupID, 3, &UpdateGroupMemberRequest{Role: &role})
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("UpdateMember as admin error = %v, want %v", err, ErrInsufficientPermission)
	}
}

func TestUpdateMemberUnknownRole(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	joinTestGroup(t, store, summary.Group.ID, 2)

	role := "MODERATOR"
	_, err := svc.UpdateMember(context.Background(), 1, summary.Group.ID, 2, &UpdateGroupMemberRequest{Role: &role})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("UpdateMember with unknown role error = %v, want validation error", err)
	}
}

func TestUpdateMemberProfile(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	joinTestGroup(t, store, summary.Group.ID, 2)

	displayName := "Minji"
	color := "#FF8800"
	updated, err := svc.UpdateMember(context.Background(), 1, summary.Group.ID, 2, &UpdateGroupMemberRequest{
		DisplayName: &displayName,
		Color:       &color,
	})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}
	if updated.DisplayName == nil || updated.DisplayName.String() != displayName {
		t.Errorf("DisplayName = %v, want %q", updated.DisplayName, displayName)
	}
	if updated.Color == nil || updated.Color.String() != color {
		t.Errorf("Color = %v, want %q", updated.Color, color)
	}
}

func TestRemoveMember(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	groupID := summary.Group.ID
	admin := joinTestGroup(t, store, groupID, 2)
	admin.ChangeRole(RoleAdmin)
	joinTestGroup(t, store, groupID, 3)

	if err := svc.RemoveMember(context.Background(), 2, groupID, 3); err != nil {
		t.Fatalf("RemoveMember as admin returned error: %v", err)
	}
	if m, _ := store.GetByGroupAndMember(context.Background(), groupID, 3); m != nil {
		t.Error("removed member should be gone")
	}

	err := svc.RemoveMember(context.Background(), 2, groupID, 1)
	if !errors.Is(err, ErrCannotRemoveOwner) {
		t.Errorf("removing the owner error = %v, want %v", err, ErrCannotRemoveOwner)
	}

	err = svc.RemoveMember(context.Background(), 2, groupID, 99)
	if !errors.Is(err, ErrGroupMemberNotFound) {
		t.Errorf("removing a non-member error = %v, want %v", err, ErrGroupMemberNotFound)
	}
}

func TestRemoveMemberRequiresManage(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	joinTestGroup(t, store, summary.Group.ID, 2)
	joinTestGroup(t, store, summary.Group.ID, 3)

	err := svc.RemoveMember(context.Background(), 2, summary.Group.ID, 3)
	if !errors.Is(err, ErrInsufficientPermission) {
		t.Errorf("RemoveMember as plain member error = %v, want %v", err, ErrInsufficientPermission)
	}
}

func TestLeave(t *testing.T) {
	svc, store := newTestService()
	summary := createTestGroup(t, svc, 1)
	joinTestGroup(t, store, summary.Group.ID, 2)

	if err := svc.Leave(context.Background(), 2, summary.Group.ID); err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	if m, _ := store.GetByGroupAndMember(context.Background(), summary.Group.ID, 2); m != nil {
		t.Error("membership should be gone after leaving")
	}

	err := svc.Leave(context.Background(), 1, summary.Group.ID)
	if !errors.Is(err, ErrOwnerCannotLeave) {
		t.Errorf("Leave as owner error = %v, want %v", err, ErrOwnerCannotLeave)
	}
}

func TestGroupLifecycle(t *testing.T) {
	svc, store := newTestService("QW12ER")
	ctx := context.Background()

	created := createTestGroup(t, svc, 1)
	groupID := created.Group.ID

	resp, err := svc.GenerateInviteCode(ctx, 1, groupID)
	if err != nil {
		t.Fatalf("GenerateInviteCode returned error: %v", err)
	}
	if _, err := svc.Join(ctx, 2, &JoinGroupRequest{InviteCode: resp.InviteCode}); err != nil {
		t.Fatalf("Join returned error: %v", err)
	}

	admin := "ADMIN"
	if _, err := svc.UpdateMember(ctx, 1, groupID, 2, &UpdateGroupMemberRequest{Role: &admin}); err != nil {
		t.Fatalf("promotion returned error: %v", err)
	}

	if err := svc.Delete(ctx, 2, groupID); !errors.Is(err, ErrInsufficientPermission) {
		t.Fatalf("Delete as promoted admin error = %v, want %v", err, ErrInsufficientPermission)
	}

	if err := svc.Delete(ctx, 1, groupID); err != nil {
		t.Fatalf("Delete as owner returned error: %v", err)
	}
	if count, _ := store.CountByGroup(ctx, groupID); count != 0 {
		t.Errorf("memberships remaining after delete = %d, want 0", count)
	}
}
