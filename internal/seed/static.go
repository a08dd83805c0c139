// ABOUTME: Static fallback data when OpenAI API key is not available.
// ABOUTME: Provides a realistic-looking set of accounts, roles, and questions.

package seed

import "fmt"

// generateStatic creates static fallback data.
func (g *Generator) generateStatic(numUsers, numRoles, numQuestions int) *GeneratedData {
	return &GeneratedData{
		Users:     generateStaticUsers(numUsers),
		Roles:     generateStaticRoles(numRoles),
		Questions: generateStaticQuestions(numQuestions),
	}
}

func generateStaticUsers(count int) []UserData {
	templates := []UserData{
		{Name: "Ana Torres", Email: "ana.torres@example.com", Password: "mariposa2024"},
		{Name: "Harper Quinn", Email: "harper.quinn@example.com", Password: "standup0930am"},
		{Name: "Alice Chen", Email: "alice.chen@example.com", Password: "teapot41kettle"},
		{Name: "Bob Martinez", Email: "bob.martinez@example.com", Password: "acoustic77bass"},
		{Name: "Sarah Johnson", Email: "sarah.johnson@example.com", Password: "maple21syrup"},
		{Name: "Dave Wilson", Email: "dave.wilson@example.com", Password: "kayak88river"},
		{Name: "Emma Davis", Email: "emma.davis@example.com", Password: "lantern35glow"},
		{Name: "Chris Lee", Email: "chris.lee@example.com", Password: "pepper12mill"},
		{Name: "Alex Rivera", Email: "alex.rivera@example.com", Password: "compass63north"},
		{Name: "Jane Kim", Email: "jane.kim@example.com", Password: "harbor90mist"},
		{Name: "Peter Zhang", Email: "peter.zhang@example.com", Password: "summit47trail"},
		{Name: "Jenna Taylor", Email: "jenna.taylor@example.com", Password: "violet28dusk"},
		{Name: "Mike Brown", Email: "mike.brown@example.com", Password: "anchor55bay"},
		{Name: "Lisa Park", Email: "lisa.park@example.com", Password: "cedar19grove"},
		{Name: "Tom Reyes", Email: "tom.reyes@example.com", Password: "falcon72sky"},
	}

	result := make([]UserData, count)
	for i := 0; i < count; i++ {
		u := templates[i%len(templates)]
		if i >= len(templates) {
			u.Name = fmt.Sprintf("%s %d", u.Name, i/len(templates)+1)
			u.Email = fmt.Sprintf("user%d@example.com", i)
		}
		result[i] = u
	}
	return result
}

func generateStaticRoles(count int) []RoleData {
	templates := []RoleData{
		{Name: "admin", Description: "Full access to every collection and operation in the console."},
		{Name: "engineering", Description: "Manage technical resources: devices, sessions, and signatures."},
		{Name: "support-agent", Description: "View users and reset their credentials; no role management."},
		{Name: "finance", Description: "Read-only access to user records for billing reconciliation."},
		{Name: "auditor", Description: "Read-only access to every collection, including request logs."},
		{Name: "hr", Description: "Manage user accounts and role assignments for onboarding."},
		{Name: "security", Description: "Manage sessions, security questions, and password policy."},
	}

	result := make([]RoleData, count)
	for i := 0; i < count; i++ {
		r := templates[i%len(templates)]
		if i >= len(templates) {
			r.Name = fmt.Sprintf("%s-%d", r.Name, i/len(templates)+1)
		}
		result[i] = r
	}
	return result
}

func generateStaticQuestions(count int) []QuestionData {
	templates := []QuestionData{
		{Name: "What was the name of your first pet?", Description: "Animal names only, no breeds."},
		{Name: "What street did you grow up on?", Description: "Street name without the number."},
		{Name: "What was your childhood nickname?", Description: "The one your family used."},
		{Name: "In what city were you born?", Description: "City name as it appears on your documents."},
		{Name: "What was the make of your first car?", Description: "Manufacturer, not the model."},
		{Name: "What is your mother's maiden name?", Description: "Surname before marriage."},
		{Name: "What was the name of your elementary school?", Description: "School name without 'Elementary'."},
		{Name: "What is the name of your favorite teacher?", Description: "First or last name, your pick."},
	}

	result := make([]QuestionData, count)
	for i := 0; i < count; i++ {
		result[i] = templates[i%len(templates)]
	}
	return result
}
