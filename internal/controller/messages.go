package controller

// Labels and status lines shown by the page.
const (
	LabelIdle = "5개 언어로 이미지 만들기"
	LabelBusy = "이미지 생성 중..."

	StatusGenerating = "OpenAI 이미지 생성 중입니다. 언어별 번역 후 이미지를 만듭니다..."
	StatusDone       = "완료! 언어별 번역과 이미지 생성이 끝났습니다."
	StatusSample     = "샘플 값이 입력되었습니다. 바로 생성해 보세요."
	StatusBusy       = "이미 이미지 생성이 진행 중입니다. 잠시 후 다시 시도해주세요."

	statusErrorPrefix = "오류가 발생했습니다: "
)

// ErrorStatus formats a failed request for the status line.
func ErrorStatus(message string) string {
	return statusErrorPrefix + message
}
