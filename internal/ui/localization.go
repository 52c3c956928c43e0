package ui

// Localization manages UI text translations. Terminal output stays in
// English; only the window chrome, forms and dialogs are translated.
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyServerURL         = "server_url"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyLogLevel          = "log_level"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyBack              = "back"
	KeyEnter             = "enter"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidServerURL  = "invalid_server_url"
	KeyRestartRequired   = "restart_required"

	KeySearch             = "search"
	KeySearchPlaceholder  = "search_placeholder"
	KeySearchHint         = "search_hint"
	KeyCommandPlaceholder = "command_placeholder"

	KeyAdminTitle   = "admin_title"
	KeyAdminPrompt  = "admin_prompt"
	KeyAdminName    = "admin_name"
	KeyAdminWelcome = "admin_welcome"
	KeyAdminHint    = "admin_hint"
	KeyAdminUpload  = "admin_upload"

	KeyUploadTitle       = "upload_title"
	KeyChooseFile        = "choose_file"
	KeyNoFileChosen      = "no_file_chosen"
	KeyUpload            = "upload"
	KeyUploadCancel      = "upload_cancel"
	KeyMetadata          = "metadata"
	KeyClass             = "class"
	KeySubject           = "subject"
	KeyYear              = "year"
	KeySemester          = "semester"
	KeyExamType          = "exam_type"
	KeyMedium            = "medium"
	KeyPages             = "pages"
	KeyWords             = "words"
	KeyLines             = "lines"
	KeySelectFile        = "select_file"
	KeyFileTooLarge      = "file_too_large"
	KeyInvalidFileType   = "invalid_file_type"
	KeyUploadFailed      = "upload_failed"
	KeyUploadNetworkFail = "upload_network_fail"
	KeyUploadCancelled   = "upload_cancelled"
	KeyUploadComplete    = "upload_complete"
	KeyUploadInFlight    = "upload_in_flight"
	KeyErrorReadingFile  = "error_reading_file"

	KeyDownloads         = "downloads"
	KeyStop              = "stop"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyErrorStoppingTask = "error_stopping_task"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Terminal Archive",
		KeyFile:              "File",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyServerURL:         "Archive Server URL",
		KeyDownloadDirectory: "Download Directory",
		KeyMaxParallel:       "Max Parallel Downloads",
		KeyLogLevel:          "Log Level",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyBack:              "Back to terminal",
		KeyEnter:             "Enter",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyInvalidServerURL:  "Server URL must start with http:// or https://",
		KeyRestartRequired:   "Restart the app to connect to the new server.",

		KeySearch:             "Search",
		KeySearchPlaceholder:  "Search papers (class, subject, year, exam type)...",
		KeySearchHint:         "Enter to search · Esc to close",
		KeyCommandPlaceholder: "Type a command, or 'help'",

		KeyAdminTitle:   "Administrator Access",
		KeyAdminPrompt:  "Enter your name:",
		KeyAdminName:    "Name",
		KeyAdminWelcome: "Welcome, %s",
		KeyAdminHint:    "You can add papers to the archive from the upload form.",
		KeyAdminUpload:  "Upload a paper",

		KeyUploadTitle:       "Upload Paper",
		KeyChooseFile:        "Choose file",
		KeyNoFileChosen:      "No file chosen",
		KeyUpload:            "Upload",
		KeyUploadCancel:      "Cancel upload",
		KeyMetadata:          "Paper details (optional)",
		KeyClass:             "Class",
		KeySubject:           "Subject",
		KeyYear:              "Year",
		KeySemester:          "Semester",
		KeyExamType:          "Exam type",
		KeyMedium:            "Medium",
		KeyPages:             "pages",
		KeyWords:             "words",
		KeyLines:             "lines",
		KeySelectFile:        "Please select a file to upload",
		KeyFileTooLarge:      "File size exceeds 16MB limit",
		KeyInvalidFileType:   "Invalid file type. Please upload PDF, DOC, DOCX, or TXT files only.",
		KeyUploadFailed:      "Upload failed. Please try again.",
		KeyUploadNetworkFail: "Upload failed due to network error.",
		KeyUploadCancelled:   "Upload cancelled.",
		KeyUploadComplete:    "File uploaded successfully!",
		KeyUploadInFlight:    "An upload is already in progress.",
		KeyErrorReadingFile:  "Could not read the selected file",

		KeyDownloads:         "Downloads",
		KeyStop:              "Stop",
		KeyOpen:              "Open",
		KeyReveal:            "Show in folder",
		KeyErrorOpeningFile:  "Error opening file",
		KeyErrorStoppingTask: "Error stopping task",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Терминальный архив",
		KeyFile:              "Файл",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeyServerURL:         "Адрес сервера архива",
		KeyDownloadDirectory: "Папка загрузки",
		KeyMaxParallel:       "Макс. параллельных",
		KeyLogLevel:          "Уровень журнала",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyBack:              "Назад в терминал",
		KeyEnter:             "Войти",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyInvalidServerURL:  "Адрес сервера должен начинаться с http:// или https://",
		KeyRestartRequired:   "Перезапустите приложение, чтобы подключиться к новому серверу.",

		KeySearch:             "Поиск",
		KeySearchPlaceholder:  "Поиск работ (класс, предмет, год, тип экзамена)...",
		KeySearchHint:         "Enter для поиска · Esc для закрытия",
		KeyCommandPlaceholder: "Введите команду или 'help'",

		KeyAdminTitle:   "Доступ администратора",
		KeyAdminPrompt:  "Введите ваше имя:",
		KeyAdminName:    "Имя",
		KeyAdminWelcome: "Добро пожаловать, %s",
		KeyAdminHint:    "Добавлять работы в архив можно через форму загрузки.",
		KeyAdminUpload:  "Загрузить работу",

		KeyUploadTitle:       "Загрузка работы",
		KeyChooseFile:        "Выбрать файл",
		KeyNoFileChosen:      "Файл не выбран",
		KeyUpload:            "Загрузить",
		KeyUploadCancel:      "Отменить загрузку",
		KeyMetadata:          "Сведения о работе (необязательно)",
		KeyClass:             "Класс",
		KeySubject:           "Предмет",
		KeyYear:              "Год",
		KeySemester:          "Семестр",
		KeyExamType:          "Тип экзамена",
		KeyMedium:            "Язык обучения",
		KeyPages:             "стр.",
		KeyWords:             "слов",
		KeyLines:             "строк",
		KeySelectFile:        "Пожалуйста, выберите файл для загрузки",
		KeyFileTooLarge:      "Размер файла превышает 16 МБ",
		KeyInvalidFileType:   "Неверный тип файла. Загрузите файл PDF, DOC, DOCX или TXT.",
		KeyUploadFailed:      "Ошибка загрузки. Попробуйте ещё раз.",
		KeyUploadNetworkFail: "Ошибка загрузки из-за сбоя сети.",
		KeyUploadCancelled:   "Загрузка отменена.",
		KeyUploadComplete:    "Файл успешно загружен!",
		KeyUploadInFlight:    "Загрузка уже выполняется.",
		KeyErrorReadingFile:  "Не удалось прочитать выбранный файл",

		KeyDownloads:         "Загрузки",
		KeyStop:              "Стоп",
		KeyOpen:              "Открыть",
		KeyReveal:            "Показать в папке",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyErrorStoppingTask: "Ошибка остановки задачи",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Arquivo Terminal",
		KeyFile:              "Arquivo",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeyServerURL:         "URL do Servidor do Arquivo",
		KeyDownloadDirectory: "Diretório de Download",
		KeyMaxParallel:       "Max Downloads Paralelos",
		KeyLogLevel:          "Nível de Log",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyBack:              "Voltar ao terminal",
		KeyEnter:             "Entrar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyInvalidServerURL:  "A URL do servidor deve começar com http:// ou https://",
		KeyRestartRequired:   "Reinicie o aplicativo para conectar ao novo servidor.",

		KeySearch:             "Buscar",
		KeySearchPlaceholder:  "Buscar provas (turma, matéria, ano, tipo de exame)...",
		KeySearchHint:         "Enter para buscar · Esc para fechar",
		KeyCommandPlaceholder: "Digite um comando ou 'help'",

		KeyAdminTitle:   "Acesso de Administrador",
		KeyAdminPrompt:  "Digite seu nome:",
		KeyAdminName:    "Nome",
		KeyAdminWelcome: "Bem-vindo, %s",
		KeyAdminHint:    "Você pode adicionar provas ao arquivo pelo formulário de envio.",
		KeyAdminUpload:  "Enviar uma prova",

		KeyUploadTitle:       "Enviar Prova",
		KeyChooseFile:        "Escolher arquivo",
		KeyNoFileChosen:      "Nenhum arquivo escolhido",
		KeyUpload:            "Enviar",
		KeyUploadCancel:      "Cancelar envio",
		KeyMetadata:          "Detalhes da prova (opcional)",
		KeyClass:             "Turma",
		KeySubject:           "Matéria",
		KeyYear:              "Ano",
		KeySemester:          "Semestre",
		KeyExamType:          "Tipo de exame",
		KeyMedium:            "Idioma de ensino",
		KeyPages:             "páginas",
		KeyWords:             "palavras",
		KeyLines:             "linhas",
		KeySelectFile:        "Selecione um arquivo para enviar",
		KeyFileTooLarge:      "O arquivo excede o limite de 16MB",
		KeyInvalidFileType:   "Tipo de arquivo inválido. Envie apenas arquivos PDF, DOC, DOCX ou TXT.",
		KeyUploadFailed:      "Falha no envio. Tente novamente.",
		KeyUploadNetworkFail: "Falha no envio devido a erro de rede.",
		KeyUploadCancelled:   "Envio cancelado.",
		KeyUploadComplete:    "Arquivo enviado com sucesso!",
		KeyUploadInFlight:    "Um envio já está em andamento.",
		KeyErrorReadingFile:  "Não foi possível ler o arquivo selecionado",

		KeyDownloads:         "Downloads",
		KeyStop:              "Parar",
		KeyOpen:              "Abrir",
		KeyReveal:            "Mostrar na pasta",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyErrorStoppingTask: "Erro ao parar tarefa",
	}
}
