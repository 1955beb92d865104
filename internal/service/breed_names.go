package service

// koreanBreedNames maps the classifier's class labels to Korean display names.
// Keys must match the labels the model was trained with, spelling included.
var koreanBreedNames = map[string]string{
	"Beagle":                        "비글",
	"Bichon Frise":                  "비숑 프리제",
	"Border Collie":                 "보더 콜리",
	"Cavalier King Charles spaniel": "카발리에 킹 찰스 스패니얼",
	"Chihuahua":                     "치와와",
	"ChowChow":                      "차우차우",
	"Cocker Spaniel":                "코커 스패니얼",
	"Dachshund":                     "닥스훈트",
	"Doberman":                      "도베르만",
	"French Bull Dog":               "프렌치 불독",
	"German Shepherd":               "저먼 셰퍼드",
	"Golden Retriever":              "골든 리트리버",
	"Italian Greyhound":             "이탈리안 그레이하운드",
	"Jindo Dog":                     "진돗개",
	"Malamute":                      "알래스칸 말라뮤트",
	"Maltese":                       "말티즈",
	"Miniature Schnauzer":           "미니어처 슈나우저",
	"Papillon":                      "파피용",
	"Pekingese":                     "페키니즈",
	"Pembroke Welsh Corgi":          "웰시 코기",
	"Pomeranian":                    "포메라니안",
	"Pug":                           "퍼그",
	"Samoyed":                       "사모예드",
	"Shiba Inu":                     "시바견",
	"Shih Tzu":                      "시츄",
	"Siberian Husky":                "시베리안 허스키",
	"Standard Poodle":               "스탠다드 푸들",
	"Toy Poodle":                    "토이 푸들",
	"West Highland White Terrier":   "웨스트 하이랜드 화이트 테리어",
	"Yorkshire Terrier":             "요크셔 테리어",
}

// KoreanName returns the Korean display name for a class label, or the label itself when unmapped.
func KoreanName(label string) string {
	if name, ok := koreanBreedNames[label]; ok {
		return name
	}
	return label
}

// KnownBreed reports whether label is one of the classifier's trained classes.
func KnownBreed(label string) bool {
	_, ok := koreanBreedNames[label]
	return ok
}
