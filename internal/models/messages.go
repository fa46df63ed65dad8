package models

// Сообщения для пользователя.
const (
	MsgUnauthorized          = "인증되지 않은 요청입니다."
	MsgForbidden             = "수정 권한이 없습니다."
	MsgMissingFields         = "필수 정보가 누락되었습니다."
	MsgInvalidRequest        = "잘못된 요청입니다."
	MsgCharacterNameRequired = "캐릭터 이름이 필요합니다."
	MsgCharacterNameTaken    = "이미 사용 중인 캐릭터 이름입니다."
	MsgCharacterNameFree     = "사용 가능한 이름입니다."
	MsgCharacterNotFound     = "캐릭터를 찾을 수 없습니다."
	MsgStoryNotFound         = "스토리를 찾을 수 없습니다."
	MsgChapterNotFound       = "챕터를 찾을 수 없습니다."
	MsgUserNotFound          = "사용자를 찾을 수 없습니다."
	MsgNotFound              = "요청한 정보를 찾을 수 없습니다."
	MsgUsernameLength        = "필명은 2-20자 이내여야 합니다."
	MsgUsernameTaken         = "이미 사용 중인 필명입니다."
	MsgFileMissing           = "파일이 없습니다."
	MsgFileTooLarge          = "파일 크기가 너무 큽니다."
	MsgUploadFailed          = "이미지 업로드에 실패했습니다."
	MsgImageOnly             = "이미지 파일만 업로드할 수 있습니다."
	MsgPromptsFailed         = "AI 프롬프트 생성에 실패했습니다."
	MsgSuggestionsFailed     = "AI 제안 생성에 실패했습니다."
	MsgSuggestionsMissing    = "필요한 정보가 부족합니다."
	MsgPromptsMissing        = "캐릭터 또는 장르 정보가 없습니다."
	MsgInvalidStatus         = "올바르지 않은 스토리 상태입니다."
	MsgInvalidSequence       = "챕터 순서는 1 이상이어야 합니다."
	MsgInvalidDraftSlot      = "올바르지 않은 저장 슬롯입니다."
	MsgLoginFailed           = "로그인에 실패했습니다."
	MsgTooManyRequests       = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	MsgInternal              = "서버 오류가 발생했습니다."
	MsgStatsSumExceeded      = "능력치 합계는 100을 넘을 수 없습니다."
)
