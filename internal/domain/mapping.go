package domain

// 这里的映射都是显式逐字段完成的，新增字段时必须同时修改这里

func HobbyFromName(name string) Hobby {
	return Hobby{Name: name}
}

func HobbyName(hobby Hobby) string {
	return hobby.Name
}

// ToEntity 不会设置任何标识符，调用方需要在持久化前后自行填充
func ToEntity(in EmployeeInput) *Employee {
	employee := &Employee{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Birthday:  in.Birthday,
		Hobbies:   make([]Hobby, 0, len(in.Hobbies)),
	}

	// 爱好是集合语义，重复的名字只保留一个
	seen := make(map[string]struct{}, len(in.Hobbies))
	for _, name := range in.Hobbies {
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		employee.Hobbies = append(employee.Hobbies, HobbyFromName(name))
	}

	return employee
}

func ToView(employee *Employee) EmployeeView {
	view := EmployeeView{
		EmployeeID: employee.PublicID,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
		Email:      employee.Email,
		Birthday:   employee.Birthday,
		Hobbies:    make([]string, 0, len(employee.Hobbies)),
	}

	for _, hobby := range employee.Hobbies {
		view.Hobbies = append(view.Hobbies, HobbyName(hobby))
	}

	return view
}
