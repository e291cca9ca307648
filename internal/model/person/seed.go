package person

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

// Seed provides a small built-in dataset so the server can run without a
// database file. Production deployments load the full snapshot instead.
func Seed() Snapshot {
	return Snapshot{
		Persons: []Person{
			{
				ID:               1,
				Name:             "織田信長",
				NameEn:           str("Oda Nobunaga"),
				BirthYear:        num(1534),
				DeathYear:        num(1582),
				Era:              str("戦国時代"),
				Region:           str("日本"),
				Gender:           str("男性"),
				Occupation:       str("武将"),
				MajorAchievement: str("天下布武を掲げ、室町幕府を終わらせた"),
				TriviaLevel:      num(95),
				Hint1:            str("日本が大きく揺れ動いた、下剋上の時代に生きた人物です。"),
				Hint2:            str("戦の指揮だけでなく、新しい経済政策にも手を付けました。"),
				Hint3:            str("本能寺で家臣の謀反に倒れたことで知られています。"),
			},
			{
				ID:               2,
				Name:             "葛飾北斎",
				NameEn:           str("Katsushika Hokusai"),
				BirthYear:        num(1760),
				DeathYear:        num(1849),
				Era:              str("江戸時代"),
				Region:           str("日本"),
				Gender:           str("男性"),
				Occupation:       str("浮世絵師"),
				MajorAchievement: str("富嶽三十六景を描き、世界の美術に影響を与えた"),
				TriviaLevel:      num(88),
			},
			{
				ID:               3,
				Name:             "マリー・キュリー",
				NameEn:           str("Marie Curie"),
				BirthYear:        num(1867),
				DeathYear:        num(1934),
				Era:              str("近代"),
				Region:           str("ヨーロッパ"),
				Gender:           str("女性"),
				Occupation:       str("科学者"),
				MajorAchievement: str("放射能の研究でノーベル賞を二度受賞した"),
				TriviaLevel:      num(82),
			},
			{
				ID:          4,
				Name:        "卑弥呼",
				NameEn:      str("Himiko"),
				BirthYear:   nil,
				DeathYear:   nil,
				Era:         str("古代"),
				Region:      str("日本"),
				Gender:      str("女性"),
				Occupation:  str("女王"),
				TriviaLevel: num(65),
			},
		},
		Attributes: []Attribute{
			{ID: 1, Category: CategoryEra, Question: "1600年より前に生まれた人ですか？", AttributeKey: "born_before_1600"},
			{ID: 2, Category: CategoryRegion, Question: "日本の人ですか？", AttributeKey: "is_japanese"},
			{ID: 3, Category: CategoryGender, Question: "男性ですか？", AttributeKey: "is_male"},
			{ID: 4, Category: CategoryOccupation, Question: "武士・武将ですか？", AttributeKey: "is_warrior"},
			{ID: 5, Category: CategoryOccupation, Question: "芸術家ですか？", AttributeKey: "is_artist"},
			{ID: 6, Category: CategoryTrait, Question: "戦いで有名な人ですか？", AttributeKey: "famous_for_battle"},
		},
		PersonAttributes: []PersonAttribute{
			{PersonID: 1, AttributeID: 1, Value: true},
			{PersonID: 1, AttributeID: 2, Value: true},
			{PersonID: 1, AttributeID: 3, Value: true},
			{PersonID: 1, AttributeID: 4, Value: true},
			{PersonID: 1, AttributeID: 6, Value: true},
			{PersonID: 2, AttributeID: 2, Value: true},
			{PersonID: 2, AttributeID: 3, Value: true},
			{PersonID: 2, AttributeID: 5, Value: true},
			{PersonID: 3, AttributeID: 5, Value: false},
			{PersonID: 4, AttributeID: 1, Value: true},
			{PersonID: 4, AttributeID: 2, Value: true},
		},
	}
}
