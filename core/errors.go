package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 对上层（UI）而言，引擎的所有失败最终都退化为空结果；
// Code 只服务于需要区分原因的调用方与测试。
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INSUFFICIENT_DATA"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "trainer"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*DomainError)
	return ok
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"          // 资源不存在（持久化缺失按此处理，不是 crash）
	ErrorCodeNotSupported     = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeInvalidInput     = "INVALID_INPUT"      // 输入无效（如重复加入库存）
	ErrorCodeInsufficientData = "INSUFFICIENT_DATA"  // 库存不足训练门槛 / 候选为空
	ErrorCodeTrainingFailed   = "TRAINING_FAILED"    // 数据集构建 / 标准化 / 拟合失败
	ErrorCodeInternalError    = "INTERNAL_ERROR"     // 内部错误
)

// 模块名称常量
const (
	ModuleStore       = "store"       // 存储模块
	ModuleFeature     = "feature"     // 特征模块
	ModuleModel       = "model"       // 模型模块
	ModuleTrainer     = "trainer"     // 训练模块
	ModuleCatalog     = "catalog"     // 目录模块
	ModuleRecommender = "recommender" // 推荐引擎
	ModuleRanking     = "ranking"     // 热度与交互
	ModuleInventory   = "inventory"   // 用户库存
)

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsInsufficientData 检查错误是否为 INSUFFICIENT_DATA
func IsInsufficientData(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInsufficientData
	}
	return false
}

// IsTrainingFailed 检查错误是否为 TRAINING_FAILED
func IsTrainingFailed(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeTrainingFailed
	}
	return false
}
