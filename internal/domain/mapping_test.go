package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEntity_LeavesIdentifiersUnset(t *testing.T) {
	in := EmployeeInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "j@x.com",
		Birthday:  NewDate(1970, time.February, 15),
		Hobbies:   []string{"chess", "basketball"},
	}

	employee := ToEntity(in)

	assert.Zero(t, employee.ID)
	assert.Equal(t, uuid.Nil, employee.PublicID)
	assert.Equal(t, "John", employee.FirstName)
	assert.Equal(t, "Doe", employee.LastName)
	assert.Equal(t, "j@x.com", employee.Email)
	assert.True(t, employee.Birthday.Equal(in.Birthday))
	assert.ElementsMatch(t, []Hobby{{Name: "chess"}, {Name: "basketball"}}, employee.Hobbies)
}

func TestToEntity_CollapsesDuplicateHobbies(t *testing.T) {
	employee := ToEntity(EmployeeInput{Hobbies: []string{"chess", "chess", "go", "chess"}})

	require.Len(t, employee.Hobbies, 2)
	assert.ElementsMatch(t, []string{"chess", "go"}, ToView(employee).Hobbies)
}

func TestToEntity_EmptyHobbies(t *testing.T) {
	employee := ToEntity(EmployeeInput{Hobbies: []string{}})
	assert.NotNil(t, employee.Hobbies)
	assert.Empty(t, employee.Hobbies)

	view := ToView(employee)
	assert.NotNil(t, view.Hobbies)
	assert.Empty(t, view.Hobbies)
}

func TestToView_CopiesPublicIDButNotInternalID(t *testing.T) {
	publicID := uuid.New()
	employee := &Employee{
		ID:        42,
		PublicID:  publicID,
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     "jane@example.com",
		Birthday:  NewDate(1985, time.July, 1),
		Hobbies:   []Hobby{{ID: 7, Name: "tennis"}},
	}

	view := ToView(employee)

	assert.Equal(t, publicID, view.EmployeeID)
	assert.Equal(t, "Jane", view.FirstName)
	assert.Equal(t, "Roe", view.LastName)
	assert.Equal(t, "jane@example.com", view.Email)
	assert.Equal(t, "1985-07-01", view.Birthday.String())
	assert.Equal(t, []string{"tennis"}, view.Hobbies)
}

func TestMappingRoundTrip(t *testing.T) {
	in := EmployeeInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "j@x.com",
		Birthday:  NewDate(1970, time.February, 15),
		Hobbies:   []string{"basketball", "chess"},
	}

	employee := ToEntity(in)
	employee.PublicID = uuid.New()
	view := ToView(employee)

	assert.Equal(t, employee.PublicID, view.EmployeeID)
	assert.Equal(t, in.FirstName, view.FirstName)
	assert.Equal(t, in.LastName, view.LastName)
	assert.Equal(t, in.Email, view.Email)
	assert.True(t, in.Birthday.Equal(view.Birthday))
	assert.ElementsMatch(t, in.Hobbies, view.Hobbies)
}

func TestHobbyConverters(t *testing.T) {
	hobby := HobbyFromName("chess")
	assert.Zero(t, hobby.ID)
	assert.Equal(t, "chess", HobbyName(hobby))
}
