// ABOUTME: Persists generated demo data through the store and identity service.
// ABOUTME: Accounts go through identity so hashes and history rows are real.

package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fernando-bedoya/adminconsole/internal/identity"
	"github.com/fernando-bedoya/adminconsole/internal/store"
)

// AdminEmail and AdminPassword are the fixed bootstrap account created on
// every seed run, so the console is reachable without consulting the data set.
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin-console-1"
)

// apiCollections drive the permission matrix: one row per collection and verb.
var apiCollections = []string{
	"users", "roles", "permissions", "user-roles", "role-permissions",
	"sessions", "passwords", "security-questions", "answers",
	"devices", "digital-signatures",
}

// Apply writes the generated data set into the database. Users are created
// through the identity service; the first role gets every permission and the
// remaining roles get the read-only slice.
func Apply(s *store.Store, svc *identity.Service, data *GeneratedData) error {
	admin, err := svc.CreateAccount("Admin", AdminEmail, AdminPassword)
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	log.Printf("Created admin account %s", AdminEmail)

	var users []*store.User
	for _, ud := range data.Users {
		u, err := svc.CreateAccount(ud.Name, ud.Email, ud.Password)
		if err != nil {
			log.Printf("  skipping user %s: %v", ud.Email, err)
			continue
		}
		users = append(users, u)
	}
	log.Printf("Created %d users", len(users))

	var roles []*store.Role
	for _, rd := range data.Roles {
		role := &store.Role{Name: rd.Name, Description: rd.Description}
		if err := s.CreateRole(role); err != nil {
			return fmt.Errorf("creating role %s: %w", rd.Name, err)
		}
		roles = append(roles, role)
	}
	log.Printf("Created %d roles", len(roles))

	perms, err := createPermissions(s)
	if err != nil {
		return err
	}
	log.Printf("Created %d permissions", len(perms))

	if err := grantPermissions(s, roles, perms); err != nil {
		return err
	}

	if len(roles) > 0 {
		if err := s.CreateUserRole(&store.UserRole{UserID: admin.ID, RoleID: roles[0].ID}); err != nil {
			return fmt.Errorf("assigning admin role: %w", err)
		}
		for i, u := range users {
			role := roles[i%len(roles)]
			if err := s.CreateUserRole(&store.UserRole{UserID: u.ID, RoleID: role.ID}); err != nil {
				return fmt.Errorf("assigning role to %s: %w", u.Email, err)
			}
		}
	}

	var questions []*store.SecurityQuestion
	for _, qd := range data.Questions {
		q := &store.SecurityQuestion{Name: qd.Name, Description: qd.Description}
		if err := s.CreateSecurityQuestion(q); err != nil {
			return fmt.Errorf("creating security question: %w", err)
		}
		questions = append(questions, q)
	}
	log.Printf("Created %d security questions", len(questions))

	if err := createUserExtras(s, users, questions); err != nil {
		return err
	}

	log.Print("Seed complete!")
	return nil
}

func createPermissions(s *store.Store) ([]*store.Permission, error) {
	var perms []*store.Permission
	for _, collection := range apiCollections {
		for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
			p := &store.Permission{URL: "/api/" + collection, Method: method}
			if err := s.CreatePermission(p); err != nil {
				return nil, fmt.Errorf("creating permission %s %s: %w", method, p.URL, err)
			}
			perms = append(perms, p)
		}
	}
	return perms, nil
}

// grantPermissions gives the first role the full matrix and every other role
// the GET slice.
func grantPermissions(s *store.Store, roles []*store.Role, perms []*store.Permission) error {
	for i, role := range roles {
		for _, p := range perms {
			if i > 0 && p.Method != "GET" {
				continue
			}
			if err := s.CreateRolePermission(&store.RolePermission{RoleID: role.ID, PermissionID: p.ID}); err != nil {
				return fmt.Errorf("granting %s %s to %s: %w", p.Method, p.URL, role.Name, err)
			}
		}
	}
	return nil
}

// createUserExtras fills out the demo profile of the first few users: a
// security answer, a registered device, a signature, and a session row.
func createUserExtras(s *store.Store, users []*store.User, questions []*store.SecurityQuestion) error {
	osNames := []string{"macOS 15", "Windows 11", "Ubuntu 24.04", "iOS 18", "Android 15"}

	for i, u := range users {
		if len(questions) > 0 {
			q := questions[i%len(questions)]
			answer := &store.Answer{
				UserID:             u.ID,
				SecurityQuestionID: q.ID,
				Content:            fmt.Sprintf("seed answer %d", i+1),
			}
			if err := s.CreateAnswer(answer); err != nil {
				return fmt.Errorf("creating answer for %s: %w", u.Email, err)
			}
		}

		device := &store.Device{
			UserID:          u.ID,
			Name:            fmt.Sprintf("%s's laptop", firstName(u.Name)),
			IP:              fmt.Sprintf("10.0.%d.%d", i/250, i%250+2),
			OperatingSystem: osNames[i%len(osNames)],
		}
		if err := s.CreateDevice(device); err != nil {
			return fmt.Errorf("creating device for %s: %w", u.Email, err)
		}

		if i%3 == 0 {
			sig := &store.DigitalSignature{
				UserID:   u.ID,
				ImageURL: fmt.Sprintf("https://cdn.example.com/signatures/%d.png", u.ID),
			}
			if err := s.CreateDigitalSignature(sig); err != nil {
				return fmt.Errorf("creating signature for %s: %w", u.Email, err)
			}
		}
	}

	// A few expired sessions so the state column shows variety.
	for i, u := range users {
		if i >= 3 {
			break
		}
		sess := &store.Session{
			ID:        fmt.Sprintf("seed-session-%d", i+1),
			UserID:    u.ID,
			Token:     "expired",
			ExpiresAt: time.Now().UTC().Add(-time.Duration(i+1) * 24 * time.Hour),
			State:     store.SessionRevoked,
		}
		if err := s.CreateSession(sess); err != nil {
			return fmt.Errorf("creating session for %s: %w", u.Email, err)
		}
	}

	return nil
}

func firstName(full string) string {
	if idx := strings.IndexByte(full, ' '); idx > 0 {
		return full[:idx]
	}
	return full
}
