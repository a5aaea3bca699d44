package utils

import (
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/employee-manager/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}
var commonHobbies = []string{
	"篮球", "足球", "羽毛球", "乒乓球", "游泳", "跑步", "围棋", "象棋",
	"摄影", "书法", "钢琴", "吉他", "阅读", "烹饪", "登山", "骑行",
}

var digits = "0123456789"

// GenerateRandomChineseName 返回姓和名
func GenerateRandomChineseName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname, name
}

// GenerateEmailLocalPart 用名字的拼音加上随机数字作为邮箱前缀
func GenerateEmailLocalPart(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, p := range pinyinArray {
		localPart += p
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart
}

// GenerateRandomBirthday 生成 18 到 60 岁之间的生日
func GenerateRandomBirthday(now time.Time) domain.Date {
	age := rand.Intn(43) + 18
	dayOfYear := rand.Intn(365)
	return domain.DateOf(now.AddDate(-age, 0, -dayOfYear))
}

// 用 Fisher-Yates 洗牌算法来挑选随机的爱好
func GenerateRandomHobbies() []string {
	hobbies := make([]string, len(commonHobbies))
	copy(hobbies, commonHobbies)

	for i := len(hobbies) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		hobbies[i], hobbies[j] = hobbies[j], hobbies[i]
	}

	n := rand.Intn(4)

	return hobbies[:n]
}

func GenerateRandomEmployee(emailDomainName string) domain.EmployeeInput {
	surname, name := GenerateRandomChineseName()

	return domain.EmployeeInput{
		FirstName: name,
		LastName:  surname,
		Email:     GenerateEmailLocalPart(surname+name) + "@" + emailDomainName,
		Birthday:  GenerateRandomBirthday(time.Now()),
		Hobbies:   GenerateRandomHobbies(),
	}
}
